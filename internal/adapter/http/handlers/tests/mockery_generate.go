package tests

// The handler tests use the hand written taskServiceMock. To switch to generated mocks
// for the list/save service and the storage port:
//
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name TaskService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename task_service_mock.go --with-expecter
//go:generate mockery --name TaskRepository --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename task_repository_mock.go --with-expecter
