package registry

import (
	"fmt"
	"net/http"

	"github.com/de-tools/reportato/pkg/models/api"
	"github.com/de-tools/reportato/pkg/reporter"
)

// Describe summarizes every registered report as seen by req, in name order.
func Describe(reports Registry, req *http.Request) ([]api.Report, error) {
	result := make([]api.Report, 0)
	for _, name := range reports.List() {
		view, ok := reports.Get(name)
		if !ok {
			continue
		}
		def, err := view.Definition(req)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve report %s: %w", name, err)
		}

		result = append(result, api.Report{
			Name:     name,
			FileName: view.FileName(req),
			Model:    def.Model().Name(),
			Fields:   def.Fields(),
			Headers:  reporter.New(def, nil).RenderedHeaders(),
		})
	}
	return result, nil
}
