// ABOUTME: Picker API tools: session lifecycle and picked media listing.
// ABOUTME: Sessions are user-driven, time-boxed photo selection flows.

package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/2389/mcp-bridge/internal/tools"
)

// PickerPack creates the pack of Picker API tools.
func PickerPack(s *Service) *tools.Pack {
	h := &pickerHandlers{service: s}
	return &tools.Pack{
		ID: "photos:picker",
		Tools: []tools.Tool{
			{
				Definition: tools.Definition{
					Name:        "google_photos_create_picker_session",
					Description: "Create a new picker session for user photo selection from Google Photos",
					InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
				},
				Handler: h.CreateSession,
			},
			{
				Definition: tools.Definition{
					Name:        "google_photos_get_picker_session",
					Description: "Get the status of a picker session",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"sessionId":{"type":"string","description":"ID of the picker session"}},"required":["sessionId"]}`),
				},
				Handler: h.GetSession,
			},
			{
				Definition: tools.Definition{
					Name:        "google_photos_list_picked_media_items",
					Description: "List media items picked by the user in a session",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"sessionId":{"type":"string","description":"ID of the picker session"},"pageSize":{"type":"integer","description":"Number of items to return (max 100)","minimum":1,"maximum":100,"default":50},"pageToken":{"type":"string","description":"Token for pagination"}},"required":["sessionId"]}`),
				},
				Handler: h.ListPickedMediaItems,
			},
			{
				Definition: tools.Definition{
					Name:        "google_photos_delete_picker_session",
					Description: "Delete a picker session",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"sessionId":{"type":"string","description":"ID of the picker session to delete"}},"required":["sessionId"]}`),
				},
				Handler: h.DeleteSession,
			},
		},
	}
}

type pickerHandlers struct {
	service *Service
}

// pickerSession is the subset of the Picker API session we read.
type pickerSession struct {
	ID            string `json:"id"`
	PickerURI     string `json:"pickerUri"`
	Status        string `json:"status"`
	MediaItemsSet bool   `json:"mediaItemsSet"`
}

func (h *pickerHandlers) CreateSession(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	data, err := h.service.picker.Post(ctx, "/sessions", nil)
	if err != nil {
		return nil, err
	}

	var session pickerSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return json.Marshal(map[string]string{
		"sessionId": session.ID,
		"pickerUri": session.PickerURI,
		"status":    session.Status,
	})
}

type sessionInput struct {
	SessionID string `json:"sessionId"`
}

func (h *pickerHandlers) GetSession(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in sessionInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.SessionID == "" {
		return nil, fmt.Errorf("sessionId is required")
	}

	data, err := h.service.picker.Get(ctx, "/sessions/"+url.PathEscape(in.SessionID))
	if err != nil {
		return nil, err
	}

	var session pickerSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return json.Marshal(map[string]any{
		"sessionId":     session.ID,
		"status":        session.Status,
		"mediaItemsSet": session.MediaItemsSet,
	})
}

type listPickedInput struct {
	SessionID string `json:"sessionId"`
	PageSize  *int   `json:"pageSize"`
	PageToken string `json:"pageToken"`
}

func (h *pickerHandlers) ListPickedMediaItems(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in listPickedInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.SessionID == "" {
		return nil, fmt.Errorf("sessionId is required")
	}

	pageSize := 50
	if in.PageSize != nil {
		pageSize = *in.PageSize
	}
	pageSize = clampPageSize(pageSize, 100)

	params := url.Values{}
	params.Set("sessionId", in.SessionID)
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	if in.PageToken != "" {
		params.Set("pageToken", in.PageToken)
	}

	data, err := h.service.picker.Get(ctx, "/mediaItems?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var listing struct {
		MediaItems    []pickedItem `json:"mediaItems"`
		NextPageToken string       `json:"nextPageToken"`
	}
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("decoding media items: %w", err)
	}

	items := make([]PickerMediaItem, 0, len(listing.MediaItems))
	for _, item := range listing.MediaItems {
		items = append(items, formatPickerMediaItem(item))
	}

	return json.Marshal(map[string]any{
		"sessionId":     in.SessionID,
		"mediaItems":    items,
		"nextPageToken": listing.NextPageToken,
		"totalCount":    len(items),
	})
}

func (h *pickerHandlers) DeleteSession(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in sessionInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.SessionID == "" {
		return nil, fmt.Errorf("sessionId is required")
	}

	if _, err := h.service.picker.Do(ctx, http.MethodDelete, "/sessions/"+url.PathEscape(in.SessionID), nil, true); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]string{
		"message": fmt.Sprintf("Session %s deleted successfully", in.SessionID),
	})
}

// clampPageSize forces a page size into [1, max].
func clampPageSize(size, max int) int {
	if size < 1 {
		return 1
	}
	if size > max {
		return max
	}
	return size
}
