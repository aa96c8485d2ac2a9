package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
)

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "")
}

func writeError(c *echo.Context, status int, errType, msg, param string) error {
	return c.JSON(status, map[string]any{
		"error": ErrorBody{
			Message: msg,
			Type:    errType,
			Param:   param,
		},
	})
}

func writeErr(c *echo.Context, err error) error {
	status, errType := statusFor(err)
	return writeError(c, status, errType, err.Error(), "")
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, newInvalidRequest(fmt.Sprintf("decode body: %v", err))
	}
	return out, nil
}

// resolvePath confines p to root. Relative paths are taken from root;
// absolute paths must already lie inside it. An existing path is also
// checked after resolving symlinks, so a link cannot lead out of root.
func resolvePath(root, p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", newInvalidRequest("path is required")
	}
	rel := p
	if filepath.IsAbs(p) {
		r, err := filepath.Rel(root, p)
		if err != nil {
			return "", newInvalidRequest(fmt.Sprintf("path %q is outside the data directory", p))
		}
		rel = r
	}
	if !filepath.IsLocal(rel) || filepath.Clean(rel) == "." {
		return "", newInvalidRequest(fmt.Sprintf("path %q is outside the data directory", p))
	}
	joined := filepath.Join(root, rel)
	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		// Missing paths are reported by the open that follows.
		return joined, nil
	}
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		realRoot = root
	}
	if r, err := filepath.Rel(realRoot, resolved); err != nil || !filepath.IsLocal(r) {
		return "", newInvalidRequest(fmt.Sprintf("path %q resolves outside the data directory", p))
	}
	return joined, nil
}

// queryInt reads an integer query parameter, defaulting to 0.
func queryInt(c *echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newInvalidRequest(fmt.Sprintf("%s: %q is not an integer", name, raw))
	}
	return v, nil
}

func queryFloat(c *echo.Context, name string, def float64) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, newInvalidRequest(fmt.Sprintf("%s: %q is not a number", name, raw))
	}
	return v, nil
}
