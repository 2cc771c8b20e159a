package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/solvely-pub/internal/logging"
	"github.com/iliyamo/solvely-pub/internal/service"
	"github.com/iliyamo/solvely-pub/internal/utils"
)

// ToolsHandler serves the stateless crypto helpers under /api.
type ToolsHandler struct {
	Cipher service.CipherService
}

func NewToolsHandler(cipher service.CipherService) *ToolsHandler {
	return &ToolsHandler{Cipher: cipher}
}

// ----- DTOs -----

type signReq struct {
	Params    json.RawMessage `json:"params"`
	Salt      *string         `json:"salt"`
	Timestamp json.RawMessage `json:"timestamp"`
}

type encryptReq struct {
	OriginalTxt *string `json:"originalTxt"`
	Key         *string `json:"key"`
}

type decryptReq struct {
	EncryptedTxt *string `json:"encryptedTxt"`
	Key          *string `json:"key"`
}

// Guid: GET /api/guid.
func (h *ToolsHandler) Guid(c echo.Context) error {
	return ok(c, utils.GenerateGUID(), msgSuccess)
}

// GenerateSalt: GET /api/generateSalt.
func (h *ToolsHandler) GenerateSalt(c echo.Context) error {
	salt, err := utils.GenerateSalt()
	if err != nil {
		return err
	}
	return ok(c, salt, msgSuccess)
}

// GenerateScretKey: GET /api/generateScretKey.  The route keeps its
// historical spelling.
func (h *ToolsHandler) GenerateScretKey(c echo.Context) error {
	key, err := utils.GenerateKey()
	if err != nil {
		return err
	}
	return ok(c, key, msgSuccess)
}

// GenerateSign: POST /api/generateSign.
func (h *ToolsHandler) GenerateSign(c echo.Context) error {
	var req signReq
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Salt == nil {
		return badRequest(c, "salt is required")
	}
	params, err := utils.ParseSignParams(req.Params)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ts, err := utils.ParseTimestamp(req.Timestamp)
	if err != nil {
		return badRequest(c, utils.ErrInvalidTimestamp.Error())
	}
	return ok(c, utils.GenerateSign(params, *req.Salt, ts), msgSuccess)
}

// EncryptedAES: POST /api/encryptedAES.
func (h *ToolsHandler) EncryptedAES(c echo.Context) error {
	var req encryptReq
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	if msg := requireFields(field("originalTxt", req.OriginalTxt), field("key", req.Key)); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.Cipher.Encrypt(*req.OriginalTxt, *req.Key)
	if err != nil {
		return h.cipherError(c, err)
	}
	return ok(c, out, msgSuccess)
}

// DecryptedAES: POST /api/decryptedAES.
func (h *ToolsHandler) DecryptedAES(c echo.Context) error {
	var req decryptReq
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	if msg := requireFields(field("encryptedTxt", req.EncryptedTxt), field("key", req.Key)); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.Cipher.Decrypt(*req.EncryptedTxt, *req.Key)
	if err != nil {
		return h.cipherError(c, err)
	}
	return ok(c, out, msgSuccess)
}

// cipherError maps caller-supplied bad keys or ciphertexts to 400.
func (h *ToolsHandler) cipherError(c echo.Context, err error) error {
	for _, known := range []error{utils.ErrInvalidKeySize, utils.ErrInvalidCiphertext, utils.ErrMalformedPlaintext} {
		if errors.Is(err, known) {
			return badRequest(c, known.Error())
		}
	}
	log := logging.FromContext(c.Request().Context())
	log.Error().Err(err).Msg("cipher failed")
	return respond(c, http.StatusInternalServerError, "", "cipher failed")
}
