package http

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/application/ports"
	"github.com/jhoicas/staffdir/internal/domain"
)

func isMultipart(c *fiber.Ctx) bool {
	return bytes.HasPrefix(c.Request().Header.ContentType(), []byte(fiber.MIMEMultipartForm))
}

// parseBody decodifica JSON, form o multipart. Un cuerpo vacío deja out sin cambios.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 && !isMultipart(c) {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError(domain.FieldError{Field: "body", Message: "cuerpo inválido: " + err.Error()})
	}
	return nil
}

// formUpload devuelve el archivo del campo field o nil si la petición no lo trae.
func formUpload(c *fiber.Ctx, field string) (*ports.Upload, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, domain.NewValidationError(domain.FieldError{Field: "body", Message: "multipart inválido: " + err.Error()})
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	return uploadFromHeader(files[0]), nil
}

func uploadFromHeader(fh *multipart.FileHeader) *ports.Upload {
	return &ports.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

func listQuery(c *fiber.Ctx) (dto.ListQuery, error) {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return q, domain.NewValidationError(domain.FieldError{Field: "query", Message: err.Error()})
	}
	return q, nil
}

// deleteRequest lee mode del cuerpo; si no viene, de ?mode=.
func deleteRequest(c *fiber.Ctx) (dto.DeleteRequest, error) {
	var in dto.DeleteRequest
	if err := parseBody(c, &in); err != nil {
		return in, err
	}
	if in.Mode == "" {
		in.Mode = c.Query("mode")
	}
	return in, nil
}
