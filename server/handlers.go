package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/query"
	"github.com/satishbabariya/forte-go/query/diagnostics"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"ready":  s.engine.Ready(),
	})
}

// dataset handles GET /api/setclasses.
func (s *Server) dataset(c *gin.Context) {
	rows, err := s.engine.Dataset(c.Request.Context(), c.Query("props"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.PureJSON(http.StatusOK, rows)
}

// byField handles GET /api/setclasses/by/:field. Without a query it returns the
// whole catalog, after checking that the field exists.
func (s *Server) byField(c *gin.Context) {
	field := c.Param("field")
	q, ok := c.GetQuery("query")
	if !ok {
		if _, err := s.engine.Values(c.Request.Context(), field); err != nil {
			s.abortWithError(c, err)
			return
		}
		s.dataset(c)
		return
	}

	rows, err := s.engine.Search(c.Request.Context(), query.Request{
		Field: field,
		Query: q,
		Props: c.Query("props"),
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.PureJSON(http.StatusOK, rows)
}

// allFields handles GET /api/setclasses/all.
func (s *Server) allFields(c *gin.Context) {
	rows, err := s.engine.SearchAll(c.Request.Context(), c.Query("query"), c.Query("props"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.PureJSON(http.StatusOK, rows)
}

// multiField handles GET /api/setclasses/search. Every field given as a query
// parameter contributes one field query; fields are taken in canonical order.
func (s *Server) multiField(c *gin.Context) {
	var queries []query.FieldQuery
	for _, f := range catalog.Fields {
		if q, ok := c.GetQuery(f.String()); ok {
			queries = append(queries, query.FieldQuery{Field: f.String(), Query: q})
		}
	}

	rows, err := s.engine.SearchMulti(c.Request.Context(), queries, c.Query("props"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.PureJSON(http.StatusOK, rows)
}

// values handles GET /api/values/:field.
func (s *Server) values(c *gin.Context) {
	values, err := s.engine.Values(c.Request.Context(), c.Param("field"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.PureJSON(http.StatusOK, values)
}

// graphNames handles GET /api/graphs.
func (s *Server) graphNames(c *gin.Context) {
	pattern := c.Query("glob")
	if pattern == "" {
		c.JSON(http.StatusOK, gin.H{"graphs": s.graphs.Names()})
		return
	}
	names, err := s.graphs.Glob(pattern)
	if err != nil {
		s.abortWithError(c, diagnostics.New(diagnostics.InvalidPattern, "%v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"graphs": names})
}

// graphArtifact handles GET /api/graphs/files/*name.
func (s *Server) graphArtifact(c *gin.Context) {
	a, err := s.graphs.Get(c.Param("name"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, a.ContentType, a.Data)
}
