package out

import (
	"context"
	"fmt"

	exportsout "inkwell/internal/modules/exports/port/out"
	"rsc.io/pdf"
)

type LocalPDFInspector struct{}

func NewLocalPDFInspector() exportsout.PDFInspector {
	return &LocalPDFInspector{}
}

func (i *LocalPDFInspector) PageCount(_ context.Context, path string) (int, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	return doc.NumPage(), nil
}
