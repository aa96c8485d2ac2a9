package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/dvfile/internal/logger"
	"github.com/samcharles93/dvfile/internal/render"
	"github.com/samcharles93/dvfile/internal/version"
	"github.com/samcharles93/dvfile/pkg/dv"
)

// Config holds server settings.
type Config struct {
	// DataDir bounds every path a client may open.
	DataDir string
	// ClipPercent is the default contrast clip for rendered sections.
	ClipPercent float64
	Logger      logger.Logger
}

type Server struct {
	store   *FileStore
	dataDir string
	clip    float64
	log     logger.Logger
	clock   func() time.Time
}

func NewServer(store *FileStore, cfg Config) (*Server, error) {
	if store == nil {
		store = NewFileStore()
	}
	if cfg.DataDir == "" {
		return nil, errors.New("api: data directory is required")
	}
	root, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("api: resolve data directory: %w", err)
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		store:   store,
		dataDir: root,
		clip:    cfg.ClipPercent,
		log:     log.With("component", "api"),
		clock:   time.Now,
	}, nil
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/version", s.handleVersion)

	e.POST("/v1/files", s.handleOpenFile)
	e.GET("/v1/files", s.handleListFiles)
	e.GET("/v1/files/:id", s.handleGetFile)
	e.DELETE("/v1/files/:id", s.handleCloseFile)
	e.GET("/v1/files/:id/sizes", s.handleSizes)
	e.GET("/v1/files/:id/sections", s.handleSection)
}

// Close releases every file opened through the server.
func (s *Server) Close() error {
	return s.store.CloseAll()
}

func (s *Server) handleVersion(c *echo.Context) error {
	return c.JSON(http.StatusOK, VersionResponse{Info: version.Resolve()})
}

func (s *Server) handleOpenFile(c *echo.Context) error {
	req, err := decodeJSON[OpenRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	path, err := resolvePath(s.dataDir, req.Path)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "path")
	}
	f, err := dv.Open(path)
	if err != nil {
		s.log.Warn("open failed", "path", path, "error", err)
		return writeErr(c, err)
	}
	rec := s.store.Add(f, s.clock())
	s.log.Info("file opened", "id", rec.ID, "path", path)
	return c.JSON(http.StatusCreated, fileInfo(rec))
}

func (s *Server) handleListFiles(c *echo.Context) error {
	recs := s.store.List()
	out := FileList{Object: "list", Data: make([]FileInfo, 0, len(recs))}
	for _, rec := range recs {
		out.Data = append(out.Data, fileInfo(rec))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) lookup(c *echo.Context) (*fileRecord, bool) {
	id := c.Param("id")
	if id == "" {
		return nil, false
	}
	return s.store.Get(id)
}

func (s *Server) handleGetFile(c *echo.Context) error {
	rec, ok := s.lookup(c)
	if !ok {
		return writeNotFound(c, "file not found")
	}
	return c.JSON(http.StatusOK, fileInfo(rec))
}

func (s *Server) handleSizes(c *echo.Context) error {
	rec, ok := s.lookup(c)
	if !ok {
		return writeNotFound(c, "file not found")
	}
	return c.JSON(http.StatusOK, SizesResponse{ID: rec.ID, Sizes: rec.File.Sizes()})
}

func (s *Server) handleCloseFile(c *echo.Context) error {
	id := c.Param("id")
	found, err := s.store.Remove(id)
	if !found {
		return writeNotFound(c, "file not found")
	}
	if err != nil {
		s.log.Warn("close failed", "id", id, "error", err)
	}
	return c.JSON(http.StatusOK, DeleteResponse{ID: id, Object: "dv.file", Deleted: true})
}

func (s *Server) handleSection(c *echo.Context) error {
	rec, ok := s.lookup(c)
	if !ok {
		return writeNotFound(c, "file not found")
	}
	var coords [3]int
	for i, name := range []string{"t", "c", "z"} {
		v, err := queryInt(c, name)
		if err != nil {
			return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), name)
		}
		coords[i] = v
	}
	t, ch, z := coords[0], coords[1], coords[2]
	f := rec.File

	format := strings.ToLower(c.QueryParam("format"))
	switch format {
	case "", "raw":
		buf, err := f.NewSectionBuffer()
		if err != nil {
			return writeErr(c, err)
		}
		if err := f.ReadSectionAt(buf, t, ch, z); err != nil {
			return writeErr(c, err)
		}
		h := f.Header()
		hdr := c.Response().Header()
		hdr.Set("X-DV-Pixel-Type", h.Mode.String())
		hdr.Set("X-DV-Byte-Order", f.ByteOrder().String())
		hdr.Set("X-DV-Shape", fmt.Sprintf("%d,%d", h.NY, h.NX))
		return c.Blob(http.StatusOK, echo.MIMEOctetStream, buf)
	case "json":
		samples, err := f.ReadSamples(t, ch, z)
		if err != nil {
			return writeErr(c, err)
		}
		h := f.Header()
		return c.JSON(http.StatusOK, SectionResponse{
			ID:        rec.ID,
			T:         t,
			C:         ch,
			Z:         z,
			NX:        h.NX,
			NY:        h.NY,
			PixelType: h.Mode.String(),
			Samples:   samples,
		})
	default:
		imgFormat, err := render.ParseFormat(format)
		if err != nil {
			return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "format")
		}
		clip, err := queryFloat(c, "clip", s.clip)
		if err != nil {
			return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "clip")
		}
		scale, err := queryFloat(c, "scale", 1)
		if err != nil {
			return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "scale")
		}
		img, err := render.Section(f, t, ch, z, render.Options{ClipPercent: clip, Scale: scale})
		if err != nil {
			if errors.Is(err, render.ErrBadClip) {
				return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "clip")
			}
			return writeErr(c, err)
		}
		var out bytes.Buffer
		if err := render.Encode(&out, img, imgFormat); err != nil {
			return writeErr(c, err)
		}
		return c.Blob(http.StatusOK, render.ContentType(imgFormat), out.Bytes())
	}
}
