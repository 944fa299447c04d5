package response

import (
	"net/http"

	"github.com/gin-gonic/gin/render"
)

// problemRender writes JSON with the problem+json content type.
type problemRender struct {
	body ProblemDetail
}

func (r problemRender) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	return render.JSON{Data: r.body}.Render(w)
}

func (r problemRender) WriteContentType(w http.ResponseWriter) {
	w.Header()["Content-Type"] = []string{problemContentType}
}
