package handler

import (
	"encoding/json"
	"strings"

	"github.com/labstack/echo/v4"
)

// bindBody decodes a JSON, urlencoded or multipart body into dst.  Form
// values are re-encoded as a JSON object of strings first, so pointer fields
// in dst stay nil exactly when the field was not sent.
func bindBody(c echo.Context, dst any) error {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return json.NewDecoder(req.Body).Decode(dst)
	}

	form, err := c.FormParams()
	if err != nil {
		return err
	}
	flat := make(map[string]string, len(form))
	for k := range form {
		flat[k] = form.Get(k)
	}
	b, err := json.Marshal(flat)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
