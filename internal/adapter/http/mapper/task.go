package mapper

import (
	"time"

	"tasktime/internal/adapter/http/dto"
	"tasktime/internal/core/domain"
)

func ToTaskItems(rows []domain.TaskRow, now time.Time) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToTaskItem(row, now))
	}
	return items
}

func ToTaskItem(row domain.TaskRow, now time.Time) dto.TaskItem {
	item := dto.TaskItem{
		PublicID:        row.PublicID,
		Description:     row.Description,
		ClientName:      row.ClientName,
		ClientPublicID:  row.ClientPublicID,
		InvoiceNumber:   row.InvoiceNumber,
		InvoicePublicID: row.InvoicePublicID,
		Balance:         row.Balance,
		Status:          string(row.Status()),
		IsRunning:       row.IsRunning,
		TimeLog:         timeLogOrEmpty(row.TimeLog),
		Duration:        row.TimeLog.Duration(now.Unix()),
		IsDeleted:       row.IsDeleted,
		CreatedAt:       row.CreatedAt.Format(time.RFC3339),
	}

	if row.DeletedAt != nil {
		value := row.DeletedAt.Format(time.RFC3339)
		item.DeletedAt = &value
	}

	return item
}

func ToTaskDetail(task domain.Task, now time.Time) dto.TaskDetail {
	return dto.TaskDetail{
		PublicID:    task.PublicID,
		Description: task.Description,
		IsRunning:   task.IsRunning,
		TimeLog:     timeLogOrEmpty(task.TimeLog),
		Duration:    task.TimeLog.Duration(now.Unix()),
		IsDeleted:   task.IsDeleted,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}

func timeLogOrEmpty(log domain.TimeLog) domain.TimeLog {
	if log == nil {
		return domain.TimeLog{}
	}
	return log
}
