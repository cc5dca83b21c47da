package gateway

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/blogem/enquiry-desk/models"
)

// normalizeResponse turns a reply body into a Response. Bodies that are not a
// JSON object are carried verbatim as the message text with a null code.
func normalizeResponse(body []byte) Response {
	var obj map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return Response{
			MessageText: string(body),
			MessageData: []any{},
		}
	}

	resp := Response{
		MessageCode: parseCode(obj["message_code"]),
		MessageData: []any{},
	}
	if text, ok := obj["message_text"]; ok && text != nil {
		if s, ok := text.(string); ok {
			resp.MessageText = s
		} else if b, err := json.Marshal(text); err == nil {
			resp.MessageText = string(b)
		}
	}
	switch data := obj["message_data"].(type) {
	case []any:
		resp.MessageData = data
	case nil:
	default:
		resp.MessageData = []any{data}
	}
	return resp
}

// parseCode accepts integral JSON numbers and numeric strings
func parseCode(v any) *int {
	var n int64
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			n = i
		} else if f, err := val.Float64(); err == nil && f == math.Trunc(f) {
			n = int64(f)
		} else {
			return nil
		}
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return nil
		}
		n = i
	default:
		return nil
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return nil
	}
	code := int(n)
	return &code
}

// extractList picks the enquiry list out of the reply shapes the API uses:
// {"message_data": [...]}, a bare array, or {"data": [...]}.
func extractList(decoded any) []any {
	switch val := decoded.(type) {
	case []any:
		return val
	case map[string]any:
		if data, ok := val["message_data"]; ok {
			list, _ := data.([]any)
			return list
		}
		list, _ := val["data"].([]any)
		return list
	default:
		return nil
	}
}

// toExternalEnquiries normalizes list items, dropping anything not an object
func toExternalEnquiries(items []any) []models.ExternalEnquiry {
	enquiries := make([]models.ExternalEnquiry, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		enquiries = append(enquiries, models.NewExternalEnquiry(raw))
	}
	return enquiries
}
