// ABOUTME: Library API tools: photos and albums, app-created content only.
// ABOUTME: A 403 on photo access gets a specific not-app-created message.

package photos

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/2389/mcp-bridge/internal/tools"
	"github.com/2389/mcp-bridge/internal/upstream"
)

// LibraryPack creates the pack of Library API tools. Since the March
// 2025 policy change the Library API only reads content this app
// created, and the tool descriptions say so.
func LibraryPack(s *Service) *tools.Pack {
	h := &libraryHandlers{service: s}
	return &tools.Pack{
		ID: "photos:library",
		Tools: []tools.Tool{
			{
				Definition: tools.Definition{
					Name:        "google_photos_get_photo",
					Description: "Get a specific photo by ID (app-created photos only)",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"photoId":{"type":"string","description":"ID of the photo to retrieve"},"includeBase64":{"type":"boolean","description":"Include the photo bytes as base64","default":false},"includeLocation":{"type":"boolean","description":"Include location metadata when present","default":true}},"required":["photoId"]}`),
				},
				Handler: h.GetPhoto,
			},
			{
				Definition: tools.Definition{
					Name:        "google_photos_list_albums",
					Description: "List albums created by this app",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"pageSize":{"type":"integer","description":"Number of albums to return (max 50)","minimum":1,"maximum":50,"default":20},"pageToken":{"type":"string","description":"Token for pagination"}}}`),
				},
				Handler: h.ListAlbums,
			},
			{
				Definition: tools.Definition{
					Name:        "google_photos_get_album",
					Description: "Get a specific album by ID (app-created albums only)",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"albumId":{"type":"string","description":"ID of the album to retrieve"}},"required":["albumId"]}`),
				},
				Handler: h.GetAlbum,
			},
			{
				Definition: tools.Definition{
					Name:        "google_photos_list_album_photos",
					Description: "List photos in an album (app-created content only)",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"albumId":{"type":"string","description":"ID of the album"},"pageSize":{"type":"integer","description":"Number of photos to return (max 100)","minimum":1,"maximum":100,"default":25},"pageToken":{"type":"string","description":"Token for pagination"},"includeLocation":{"type":"boolean","description":"Include location metadata when present","default":true}},"required":["albumId"]}`),
				},
				Handler: h.ListAlbumPhotos,
			},
			{
				Definition: tools.Definition{
					Name:        "google_photos_list_app_created_photos",
					Description: "List photos created by this app",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"pageSize":{"type":"integer","description":"Number of photos to return (max 100)","minimum":1,"maximum":100,"default":25},"pageToken":{"type":"string","description":"Token for pagination"},"includeLocation":{"type":"boolean","description":"Include location metadata when present","default":true}}}`),
				},
				Handler: h.ListAppCreatedPhotos,
			},
		},
	}
}

type libraryHandlers struct {
	service *Service
}

type getPhotoInput struct {
	PhotoID         string `json:"photoId"`
	IncludeBase64   bool   `json:"includeBase64"`
	IncludeLocation *bool  `json:"includeLocation"`
}

func (h *libraryHandlers) GetPhoto(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in getPhotoInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.PhotoID == "" {
		return nil, fmt.Errorf("photoId is required")
	}

	data, err := h.service.library.Get(ctx, "/mediaItems/"+url.PathEscape(in.PhotoID))
	if err != nil {
		var apiErr *upstream.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden {
			return nil, fmt.Errorf("access denied for photo %s: the Library API can only read photos created by this app", in.PhotoID)
		}
		return nil, err
	}

	var item mediaItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("decoding media item: %w", err)
	}

	photo := formatPhoto(item, includeLocation(in.IncludeLocation))
	if in.IncludeBase64 && item.BaseURL != "" {
		encoded, err := h.downloadBase64(ctx, item.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("downloading photo bytes: %w", err)
		}
		photo.Base64Data = encoded
	}
	return json.Marshal(photo)
}

type listAlbumsInput struct {
	PageSize  *int   `json:"pageSize"`
	PageToken string `json:"pageToken"`
}

func (h *libraryHandlers) ListAlbums(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in listAlbumsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	pageSize := 20
	if in.PageSize != nil {
		pageSize = *in.PageSize
	}
	pageSize = clampPageSize(pageSize, 50)

	params := url.Values{}
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	if in.PageToken != "" {
		params.Set("pageToken", in.PageToken)
	}

	data, err := h.service.library.Get(ctx, "/albums?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var listing struct {
		Albums        []album `json:"albums"`
		NextPageToken string  `json:"nextPageToken"`
	}
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("decoding albums: %w", err)
	}

	albums := make([]Album, 0, len(listing.Albums))
	for _, a := range listing.Albums {
		albums = append(albums, formatAlbum(a))
	}
	return json.Marshal(map[string]any{
		"albums":        albums,
		"nextPageToken": listing.NextPageToken,
		"totalCount":    len(albums),
	})
}

type getAlbumInput struct {
	AlbumID string `json:"albumId"`
}

func (h *libraryHandlers) GetAlbum(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in getAlbumInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.AlbumID == "" {
		return nil, fmt.Errorf("albumId is required")
	}

	data, err := h.service.library.Get(ctx, "/albums/"+url.PathEscape(in.AlbumID))
	if err != nil {
		return nil, err
	}

	var a album
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding album: %w", err)
	}
	return json.Marshal(formatAlbum(a))
}

type listAlbumPhotosInput struct {
	AlbumID         string `json:"albumId"`
	PageSize        *int   `json:"pageSize"`
	PageToken       string `json:"pageToken"`
	IncludeLocation *bool  `json:"includeLocation"`
}

func (h *libraryHandlers) ListAlbumPhotos(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in listAlbumPhotosInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.AlbumID == "" {
		return nil, fmt.Errorf("albumId is required")
	}

	pageSize := 25
	if in.PageSize != nil {
		pageSize = *in.PageSize
	}
	pageSize = clampPageSize(pageSize, 100)

	body := map[string]any{
		"albumId":  in.AlbumID,
		"pageSize": pageSize,
	}
	if in.PageToken != "" {
		body["pageToken"] = in.PageToken
	}

	data, err := h.service.library.Post(ctx, "/mediaItems:search", body)
	if err != nil {
		return nil, err
	}
	return h.formatPhotoListing(data, includeLocation(in.IncludeLocation))
}

type listAppCreatedInput struct {
	PageSize        *int   `json:"pageSize"`
	PageToken       string `json:"pageToken"`
	IncludeLocation *bool  `json:"includeLocation"`
}

func (h *libraryHandlers) ListAppCreatedPhotos(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in listAppCreatedInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	pageSize := 25
	if in.PageSize != nil {
		pageSize = *in.PageSize
	}
	pageSize = clampPageSize(pageSize, 100)

	params := url.Values{}
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	if in.PageToken != "" {
		params.Set("pageToken", in.PageToken)
	}

	data, err := h.service.library.Get(ctx, "/mediaItems?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return h.formatPhotoListing(data, includeLocation(in.IncludeLocation))
}

// formatPhotoListing projects a mediaItems listing response.
func (h *libraryHandlers) formatPhotoListing(data json.RawMessage, withLocation bool) (json.RawMessage, error) {
	var listing struct {
		MediaItems    []mediaItem `json:"mediaItems"`
		NextPageToken string      `json:"nextPageToken"`
	}
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("decoding media items: %w", err)
	}

	photos := make([]Photo, 0, len(listing.MediaItems))
	for _, item := range listing.MediaItems {
		photos = append(photos, formatPhoto(item, withLocation))
	}
	return json.Marshal(map[string]any{
		"photos":        photos,
		"nextPageToken": listing.NextPageToken,
		"totalCount":    len(photos),
	})
}

// downloadBase64 fetches the full-resolution bytes behind a base URL and
// returns them base64-encoded.
func (h *libraryHandlers) downloadBase64(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sizedURL(baseURL, "download"), nil)
	if err != nil {
		return "", err
	}
	resp, err := h.service.download.Do(req)
	if err != nil {
		return "", &upstream.NetworkError{Op: http.MethodGet, URL: baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &upstream.Error{Status: resp.StatusCode, Message: "failed to download photo bytes"}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// includeLocation applies the default-true semantics of the
// includeLocation argument.
func includeLocation(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
