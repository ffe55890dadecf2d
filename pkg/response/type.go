package response

import (
	"encoding/json"
	"time"
)

// Resp is the JSON body of every response. ErrorCode is 0 on success.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// DateTime marshals as "2006-01-02 15:04:05" in UTC.
type DateTime time.Time

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).UTC().Format(time.DateTime))
}
