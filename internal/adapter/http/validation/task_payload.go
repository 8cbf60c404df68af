package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"tasktime/internal/adapter/http/dto"
	"tasktime/internal/core/domain"
)

// BuildSavePayload converts the request body into the optional fields of a task save.
// A time_log that cannot be decoded fails with domain.ErrMalformedInput.
func BuildSavePayload(req dto.SaveTaskRequest) (domain.SavePayload, error) {
	payload := domain.SavePayload{
		Client:      req.Client,
		Description: req.Description,
	}

	if req.Action != nil {
		action, err := domain.ParseAction(*req.Action)
		if err != nil {
			return domain.SavePayload{}, err
		}
		payload.Action = action
	}

	if len(req.TimeLog) > 0 && !isJSONNull(req.TimeLog) {
		log, supplied, err := decodeTimeLog(req.TimeLog)
		if err != nil {
			return domain.SavePayload{}, err
		}
		if supplied {
			payload.TimeLog = &log
		}
	}

	return payload, nil
}

// decodeTimeLog reads time_log as a serialized string or an inline array.
// A blank serialized string means the field was left out.
func decodeTimeLog(raw json.RawMessage) (domain.TimeLog, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var serialized string
		if err := json.Unmarshal(trimmed, &serialized); err != nil {
			return nil, false, fmt.Errorf("%w: time_log: %v", domain.ErrMalformedInput, err)
		}
		if strings.TrimSpace(serialized) == "" {
			return nil, false, nil
		}
		log, err := domain.ParseTimeLog(serialized)
		return log, err == nil, err
	}
	log, err := domain.ParseTimeLog(string(trimmed))
	return log, err == nil, err
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
