package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/andrebq/faculty/export"
	"github.com/andrebq/faculty/internal/respond"
)

func (h handlers) exportReports(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Unsupported export format")
		return
	}
	rows, err := h.ctl.ExportRows(r.Context())
	if err != nil {
		fail(w, r, err, "Export failed")
		return
	}
	// rendered in memory so failures can still become a json error
	var buf bytes.Buffer
	err = export.Write(&buf, format, rows)
	if err != nil {
		respond.Internal(w, r, err, "Export failed")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%v", format.Filename("reports")))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
