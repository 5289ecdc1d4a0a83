package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 1 << 16

var credentialsSchemaLoader = gojsonschema.NewStringLoader(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"username": {"type": "string"},
		"password": {"type": "string"}
	}
}`)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// errBadBody means the request body could not be read as credentials.
var errBadBody = errors.New("request body failed validation")

// readCredentials accepts a JSON body, validated against the credentials
// schema, or a form-encoded body.
func readCredentials(r *http.Request) (*credentials, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, errors.Wrap(errBadBody, err.Error())
		}
		return &credentials{
			Username: r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		}, nil
	}

	defer r.Body.Close()
	bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.Err(err).Msg("error reading request body")
		return nil, errBadBody
	}
	validationResult, err := gojsonschema.Validate(
		credentialsSchemaLoader,
		gojsonschema.NewBytesLoader(bodyBytes),
	)
	if err != nil {
		// Most likely the body was not valid JSON
		return nil, errors.Wrap(errBadBody, err.Error())
	}
	if !validationResult.Valid() {
		verrStrs := make([]string, len(validationResult.Errors()))
		for i, verr := range validationResult.Errors() {
			verrStrs[i] = verr.String()
		}
		return nil, errors.Wrap(errBadBody, strings.Join(verrStrs, "; "))
	}
	creds := &credentials{}
	if err := json.Unmarshal(bodyBytes, creds); err != nil {
		return nil, errors.Wrap(errBadBody, err.Error())
	}
	return creds, nil
}
