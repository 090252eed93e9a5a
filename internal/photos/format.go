// ABOUTME: Projections for Photos entities: Photo, Album, PickerMediaItem.
// ABOUTME: Includes the base-URL size-suffix table for photo downloads.

package photos

import "encoding/json"

// mediaItem is the subset of the Library API media item we read.
type mediaItem struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	Description   string `json:"description"`
	ProductURL    string `json:"productUrl"`
	BaseURL       string `json:"baseUrl"`
	MimeType      string `json:"mimeType"`
	MediaMetadata struct {
		CreationTime string          `json:"creationTime"`
		Width        string          `json:"width"`
		Height       string          `json:"height"`
		Photo        json.RawMessage `json:"photo"`
		Video        json.RawMessage `json:"video"`
	} `json:"mediaMetadata"`
	Location *rawLocation `json:"location"`
}

// PhotoMediaMetadata is the metadata block of a formatted photo. Exactly
// one of Photo/Video is set, mirroring which block the upstream carried.
type PhotoMediaMetadata struct {
	CreationTime string          `json:"creationTime"`
	Width        string          `json:"width"`
	Height       string          `json:"height"`
	Photo        json.RawMessage `json:"photo,omitempty"`
	Video        json.RawMessage `json:"video,omitempty"`
}

// PhotoLocation is the optional location block of a formatted photo.
type PhotoLocation struct {
	LocationName string `json:"locationName,omitempty"`
	LatLng       any    `json:"latlng,omitempty"`
}

// Photo is the caller-facing projection of a Library API media item.
type Photo struct {
	ID            string             `json:"id"`
	Filename      string             `json:"filename"`
	Description   string             `json:"description"`
	ProductURL    string             `json:"productUrl"`
	BaseURL       string             `json:"baseUrl"`
	MimeType      string             `json:"mimeType"`
	MediaMetadata PhotoMediaMetadata `json:"mediaMetadata"`
	Location      *PhotoLocation     `json:"location,omitempty"`
	Base64Data    string             `json:"base64Data,omitempty"`
}

// rawLocation is the upstream location shape (only present on items the
// app created with location metadata).
type rawLocation struct {
	LocationName string `json:"locationName"`
	LatLng       any    `json:"latlng"`
}

func formatPhoto(item mediaItem, includeLocation bool) Photo {
	p := Photo{
		ID:          item.ID,
		Filename:    item.Filename,
		Description: item.Description,
		ProductURL:  item.ProductURL,
		BaseURL:     item.BaseURL,
		MimeType:    item.MimeType,
		MediaMetadata: PhotoMediaMetadata{
			CreationTime: item.MediaMetadata.CreationTime,
			Width:        item.MediaMetadata.Width,
			Height:       item.MediaMetadata.Height,
		},
	}
	// Carry whichever type-specific block the upstream item has.
	if len(item.MediaMetadata.Photo) > 0 {
		p.MediaMetadata.Photo = item.MediaMetadata.Photo
	} else if len(item.MediaMetadata.Video) > 0 {
		p.MediaMetadata.Video = item.MediaMetadata.Video
	}
	if includeLocation && item.Location != nil {
		p.Location = &PhotoLocation{
			LocationName: item.Location.LocationName,
			LatLng:       item.Location.LatLng,
		}
	}
	return p
}

// album is the subset of the Library API album we read.
type album struct {
	ID                    string          `json:"id"`
	Title                 string          `json:"title"`
	ProductURL            string          `json:"productUrl"`
	MediaItemsCount       string          `json:"mediaItemsCount"`
	CoverPhotoBaseURL     string          `json:"coverPhotoBaseUrl"`
	CoverPhotoMediaItemID string          `json:"coverPhotoMediaItemId"`
	IsWriteable           bool            `json:"isWriteable"`
	ShareInfo             json.RawMessage `json:"shareInfo"`
}

// Album is the caller-facing projection of an album.
type Album struct {
	ID                    string          `json:"id"`
	Title                 string          `json:"title"`
	ProductURL            string          `json:"productUrl"`
	MediaItemsCount       string          `json:"mediaItemsCount"`
	CoverPhotoBaseURL     string          `json:"coverPhotoBaseUrl"`
	CoverPhotoMediaItemID string          `json:"coverPhotoMediaItemId"`
	IsWriteable           bool            `json:"isWriteable"`
	ShareInfo             json.RawMessage `json:"shareInfo"`
}

func formatAlbum(a album) Album {
	shareInfo := a.ShareInfo
	if len(shareInfo) == 0 {
		shareInfo = json.RawMessage(`{}`)
	}
	return Album{
		ID:                    a.ID,
		Title:                 a.Title,
		ProductURL:            a.ProductURL,
		MediaItemsCount:       a.MediaItemsCount,
		CoverPhotoBaseURL:     a.CoverPhotoBaseURL,
		CoverPhotoMediaItemID: a.CoverPhotoMediaItemID,
		IsWriteable:           a.IsWriteable,
		ShareInfo:             shareInfo,
	}
}

// pickedItem is the subset of the Picker API media item we read.
type pickedItem struct {
	ID         string `json:"id"`
	CreateTime string `json:"createTime"`
	Type       string `json:"type"`
	MediaFile  struct {
		Filename string `json:"filename"`
		MimeType string `json:"mimeType"`
		BaseURL  string `json:"baseUrl"`
		Metadata struct {
			Width       any             `json:"width"`
			Height      any             `json:"height"`
			CameraMake  string          `json:"cameraMake"`
			CameraModel string          `json:"cameraModel"`
			PhotoMeta   json.RawMessage `json:"photoMetadata"`
			VideoMeta   json.RawMessage `json:"videoMetadata"`
		} `json:"mediaFileMetadata"`
	} `json:"mediaFile"`
}

// PickerPhotoMetadata is the photo-specific metadata of a picked item.
type PickerPhotoMetadata struct {
	FocalLength     any `json:"focalLength"`
	ApertureFNumber any `json:"apertureFNumber"`
	ISOEquivalent   any `json:"isoEquivalent"`
	ExposureTime    any `json:"exposureTime"`
}

// PickerVideoMetadata is the video-specific metadata of a picked item.
type PickerVideoMetadata struct {
	FPS              any `json:"fps"`
	ProcessingStatus any `json:"processingStatus"`
}

// PickerMediaItem is the caller-facing projection of a picked media
// item. Exactly one of PhotoMetadata/VideoMetadata is present.
type PickerMediaItem struct {
	ID            string               `json:"id"`
	CreateTime    string               `json:"createTime"`
	Type          string               `json:"type"`
	Filename      string               `json:"filename"`
	MimeType      string               `json:"mimeType"`
	BaseURL       string               `json:"baseUrl"`
	Width         any                  `json:"width"`
	Height        any                  `json:"height"`
	CameraMake    string               `json:"cameraMake"`
	CameraModel   string               `json:"cameraModel"`
	PhotoMetadata *PickerPhotoMetadata `json:"photoMetadata,omitempty"`
	VideoMetadata *PickerVideoMetadata `json:"videoMetadata,omitempty"`
}

func formatPickerMediaItem(item pickedItem) PickerMediaItem {
	out := PickerMediaItem{
		ID:          item.ID,
		CreateTime:  item.CreateTime,
		Type:        item.Type,
		Filename:    item.MediaFile.Filename,
		MimeType:    item.MediaFile.MimeType,
		BaseURL:     item.MediaFile.BaseURL,
		Width:       item.MediaFile.Metadata.Width,
		Height:      item.MediaFile.Metadata.Height,
		CameraMake:  item.MediaFile.Metadata.CameraMake,
		CameraModel: item.MediaFile.Metadata.CameraModel,
	}
	if len(item.MediaFile.Metadata.PhotoMeta) > 0 {
		var meta PickerPhotoMetadata
		if json.Unmarshal(item.MediaFile.Metadata.PhotoMeta, &meta) == nil {
			out.PhotoMetadata = &meta
		}
	} else if len(item.MediaFile.Metadata.VideoMeta) > 0 {
		var meta PickerVideoMetadata
		if json.Unmarshal(item.MediaFile.Metadata.VideoMeta, &meta) == nil {
			out.VideoMetadata = &meta
		}
	}
	return out
}

// sizeSuffixes maps a photo size code to the Google base-URL suffix.
var sizeSuffixes = map[string]string{
	"small":    "=s150",
	"medium":   "=s400",
	"large":    "=s1024",
	"download": "=d",
}

// sizedURL appends the size suffix for the given code to a base URL.
// Unrecognized codes fall back to medium.
func sizedURL(baseURL, size string) string {
	suffix, ok := sizeSuffixes[size]
	if !ok {
		suffix = sizeSuffixes["medium"]
	}
	return baseURL + suffix
}
