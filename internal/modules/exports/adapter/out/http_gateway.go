package out

import (
	"context"
	"io"
	"time"

	"inkwell/internal/modules/exports/domain"
	exportsout "inkwell/internal/modules/exports/port/out"
	"inkwell/internal/platform/api"
)

type HTTPExportGateway struct {
	client *api.Client
}

func NewHTTPExportGateway(client *api.Client) exportsout.ExportGateway {
	return &HTTPExportGateway{client: client}
}

type exportPayload struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	BookTitle string    `json:"book_title"`
	Format    string    `json:"format"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (p exportPayload) toDomain() domain.Export {
	return domain.Export{
		ID:        p.ID,
		BookID:    p.BookID,
		BookTitle: p.BookTitle,
		Format:    domain.Format(p.Format),
		Status:    domain.ExportStatus(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func (g *HTTPExportGateway) Request(ctx context.Context, bookID string, format domain.Format) (domain.Export, error) {
	body := map[string]string{"book_id": bookID, "format": string(format)}
	created := exportPayload{}
	if err := g.client.Post(ctx, "/api/exports", body, &created); err != nil {
		return domain.Export{}, err
	}
	return created.toDomain(), nil
}

func (g *HTTPExportGateway) RequestBulk(ctx context.Context) (domain.Export, error) {
	created := exportPayload{}
	if err := g.client.Post(ctx, "/api/exports/bulk", map[string]any{}, &created); err != nil {
		return domain.Export{}, err
	}
	return created.toDomain(), nil
}

func (g *HTTPExportGateway) List(ctx context.Context) ([]domain.Export, error) {
	payload := struct {
		Exports []exportPayload `json:"exports"`
	}{}
	if err := g.client.Get(ctx, "/api/exports", &payload); err != nil {
		return nil, err
	}
	exports := make([]domain.Export, 0, len(payload.Exports))
	for _, e := range payload.Exports {
		exports = append(exports, e.toDomain())
	}
	return exports, nil
}

func (g *HTTPExportGateway) Download(ctx context.Context, exportID string, w io.Writer) (int64, error) {
	return g.client.Download(ctx, "/api/exports/"+exportID+"/download", w)
}
