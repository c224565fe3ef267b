package broadcast

import "errors"

var ErrQueueFull = errors.New("broadcast queue is full, notification dropped")
