// Package photos exposes the Google Photos Picker and Library APIs as
// MCP tool packs.
//
// # Packs
//
// Two packs cover the adapter's nine tools:
//
//	photos:picker  - google_photos_create_picker_session,
//	                 google_photos_get_picker_session,
//	                 google_photos_list_picked_media_items,
//	                 google_photos_delete_picker_session
//	photos:library - google_photos_get_photo, google_photos_list_albums,
//	                 google_photos_get_album, google_photos_list_album_photos,
//	                 google_photos_list_app_created_photos
//
// # Authentication
//
// Every upstream call resolves its bearer token per request: the token
// from the request context wins; otherwise the Service mints one from
// the configured OAuth refresh credentials. Credentials are validated
// at construction so a misconfigured deployment fails at startup.
//
// # Library API scope
//
// Since the March 2025 policy change the Library API only returns
// content created by the requesting app. A 403 on photo access is
// translated into a message saying exactly that, since the upstream
// error text does not.
package photos
