package testbackend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/aribt/hackathon-cms/shared/api"
	"github.com/aribt/hackathon-cms/shared/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if !strings.EqualFold(req.Email, b.opts.Email) ||
		bcrypt.CompareHashAndPassword(b.passHash, []byte(req.Password)) != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}

	token, err := b.issueToken()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message":         "Login successful",
		b.opts.TokenField: token,
	})
}

func (b *Backend) resource(w http.ResponseWriter, r *http.Request) (*collection, bool) {
	c, ok := b.collections[chi.URLParam(r, "resource")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
	}
	return c, ok
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	c, ok := b.resource(w, r)
	if !ok {
		return
	}
	records := c.all()
	if b.opts.InfoAsObject && chi.URLParam(r, "resource") == "abouthackerthon" && len(records) == 1 {
		utils.WriteJSON(w, http.StatusOK, records[0])
		return
	}
	utils.WriteJSON(w, http.StatusOK, records)
}

func (b *Backend) get(w http.ResponseWriter, r *http.Request) {
	c, ok := b.resource(w, r)
	if !ok {
		return
	}
	rec, found := c.get(chi.URLParam(r, "id"))
	if !found {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "record not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, rec)
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	c, ok := b.resource(w, r)
	if !ok {
		return
	}
	fields, err := readFields(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	delete(fields, "id")
	linkRegistration(fields)
	rec := c.insert(fields)
	b.log.Debug("created record", "resource", chi.URLParam(r, "resource"), "id", rec["id"])
	utils.WriteJSON(w, http.StatusCreated, map[string]any{"message": "Created successfully", "data": rec})
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request) {
	c, ok := b.resource(w, r)
	if !ok {
		return
	}
	fields, err := readFields(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	linkRegistration(fields)
	rec, found := c.update(chi.URLParam(r, "id"), fields)
	if !found {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "record not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"message": "Updated successfully", "data": rec})
}

func (b *Backend) remove(w http.ResponseWriter, r *http.Request) {
	c, ok := b.resource(w, r)
	if !ok {
		return
	}
	if !c.remove(chi.URLParam(r, "id")) {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "record not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// readFields turns a JSON or multipart body into record fields. Uploaded
// files are stored as a URL under /uploads.
func readFields(r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("unsupported content type: %w", err)
	}

	fields := map[string]any{}
	switch {
	case mediaType == "application/json":
		if len(bytes.TrimSpace(body)) == 0 {
			return fields, nil
		}
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, fmt.Errorf("body is invalid json")
		}
	case strings.HasPrefix(mediaType, "multipart/"):
		mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("malformed multipart body: %w", err)
			}
			data, err := io.ReadAll(part)
			if err != nil {
				return nil, err
			}
			if part.FileName() != "" {
				fields[part.FormName()] = "/uploads/" + uuid.NewString() + "/" + part.FileName()
				continue
			}
			fields[part.FormName()] = decodeEmbedded(string(data))
		}
	default:
		return nil, fmt.Errorf("unsupported content type %s", mediaType)
	}
	return fields, nil
}

// decodeEmbedded unpacks form fields that carry a JSON object, like the
// registration copied into a team member.
func decodeEmbedded(value string) any {
	if !strings.HasPrefix(strings.TrimSpace(value), "{") {
		return value
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(value), &obj); err != nil {
		return value
	}
	return obj
}

// linkRegistration exposes an embedded registration the way the backend
// returns it on team members.
func linkRegistration(fields map[string]any) {
	if reg, ok := fields["Registrationformhackerid"].(map[string]any); ok {
		fields["Registrationformhacker"] = reg
	}
}
