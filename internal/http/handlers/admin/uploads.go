package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Inovatum/site-vendas/internal/http/middleware"
	"github.com/Inovatum/site-vendas/internal/shared/apperr"
	"github.com/Inovatum/site-vendas/internal/storage"
)

const maxUploadBytes = 5 << 20

type UploadsHandler struct {
	Uploads storage.Storage
}

func NewUploadsHandler(uploads storage.Storage) *UploadsHandler {
	return &UploadsHandler{Uploads: uploads}
}

// Logo: POST /api/admin/uploads/logo (multipart, campo file)
func (h *UploadsHandler) Logo(c *gin.Context) {
	uploadFile(c, h.Uploads, "file", storage.KindLogo)
}

// Favicon: POST /api/admin/uploads/favicon (multipart, campo file)
func (h *UploadsHandler) Favicon(c *gin.Context) {
	uploadFile(c, h.Uploads, "file", storage.KindFavicon)
}

func uploadFile(c *gin.Context, store storage.Storage, field string, kind storage.Kind) {
	fh, err := c.FormFile(field)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Envie um arquivo no campo "+field+".", nil))
		return
	}
	if fh.Size > maxUploadBytes {
		middleware.Fail(c, apperr.InvalidErr("Arquivo acima de 5MB.", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	res, err := store.Put(c.Request.Context(), f, storage.PutInput{
		Kind:        kind,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Não foi possível salvar o arquivo.", nil))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": res.Key, "url": res.URL})
}
