package apierrors

const (
	MsgFailListTask           = "errorListTask"
	MsgInvalidTaskPayload     = "invalidTaskPayload"
	MsgInvalidTimeLog         = "invalidTimeLog"
	MsgInvalidClientReference = "invalidClientReference"
	MsgTaskNotFound           = "taskNotFound"
	MsgFailSaveTask           = "failSaveTask"
	MsgMissingAccount         = "missingAccount"
)
