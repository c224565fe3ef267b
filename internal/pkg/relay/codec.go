package relay

import (
	"encoding/json"
	"errors"
	"fmt"

	"tracker/internal/entities"
	"tracker/internal/handlers/rest/dto"
)

var ErrBadPayload = errors.New("bad relay payload")

// Encode кодирует изменение в тот же JSON, что получают наблюдатели.
func Encode(change entities.StatusChange) ([]byte, error) {
	payload, err := json.Marshal(dto.FromStatusChange(change))
	if err != nil {
		return nil, fmt.Errorf("encode status change: %w", err)
	}
	return payload, nil
}

func Decode(payload string) (entities.StatusChange, error) {
	var message dto.StatusChange
	err := json.Unmarshal([]byte(payload), &message)
	if err != nil {
		return entities.StatusChange{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}

	if message.OrderID == "" || message.NewStatus == "" {
		return entities.StatusChange{}, fmt.Errorf("%w: order_id and new_status are required", ErrBadPayload)
	}

	return dto.ToStatusChange(message), nil
}
