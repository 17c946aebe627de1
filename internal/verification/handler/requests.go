package handler

import (
	"io"
	"net/http"

	"quod/internal/verification/models"
	dErrors "quod/pkg/domain-errors"
	"quod/pkg/requestcontext"
)

// maxMultipartMemory bounds how much of a multipart body is buffered in
// memory before spilling to disk. Image parts stay as handles either way.
const maxMultipartMemory = 10 << 20

func decodeFacialRequest(r *http.Request) (models.FacialRequest, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return models.FacialRequest{}, dErrors.New(dErrors.CodeBadRequest, "invalid multipart form")
	}
	req := models.FacialRequest{
		UserID:      r.FormValue("userId"),
		FaceImage:   fileAsset(r, "faceImage"),
		DeviceInfo:  deviceInfo(r),
		GeoLocation: r.FormValue("geoLocation"),
	}
	if err := req.Validate(); err != nil {
		return models.FacialRequest{}, err
	}
	return req, nil
}

func decodeFingerprintRequest(r *http.Request) (models.FingerprintRequest, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return models.FingerprintRequest{}, dErrors.New(dErrors.CodeBadRequest, "invalid multipart form")
	}
	req := models.FingerprintRequest{
		UserID:           r.FormValue("userId"),
		FingerprintImage: fileAsset(r, "fingerprintImage"),
		FingerPosition:   r.FormValue("fingerPosition"),
		DeviceInfo:       deviceInfo(r),
		GeoLocation:      r.FormValue("geoLocation"),
	}
	if err := req.Validate(); err != nil {
		return models.FingerprintRequest{}, err
	}
	return req, nil
}

func decodeDocumentPairRequest(r *http.Request) (models.DocumentPairRequest, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return models.DocumentPairRequest{}, dErrors.New(dErrors.CodeBadRequest, "invalid multipart form")
	}
	req := models.DocumentPairRequest{
		UserID:        r.FormValue("userId"),
		DocumentImage: fileAsset(r, "documentImage"),
		FaceImage:     fileAsset(r, "faceImage"),
		DocumentType:  r.FormValue("documentType"),
		DeviceInfo:    deviceInfo(r),
		GeoLocation:   r.FormValue("geoLocation"),
	}
	if err := req.Validate(); err != nil {
		return models.DocumentPairRequest{}, err
	}
	return req, nil
}

// fileAsset wraps a multipart part as an ImageAsset without copying its
// bytes. A missing part yields the zero asset, which request validation
// rejects with the field-specific message.
func fileAsset(r *http.Request, field string) models.ImageAsset {
	if r.MultipartForm == nil {
		return models.ImageAsset{}
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return models.ImageAsset{}
	}
	fh := headers[0]
	return models.ImageAsset{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open:        func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// deviceInfo prefers the explicit form field and falls back to the device
// description the middleware derived from the User-Agent.
func deviceInfo(r *http.Request) string {
	if v := r.FormValue("deviceInfo"); v != "" {
		return v
	}
	return requestcontext.DeviceInfo(r.Context())
}
