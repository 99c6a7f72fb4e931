package handler

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// LinkBuilder renders absolute resource URIs. With a configured base URL every
// link uses it; otherwise the origin is taken from the request.
type LinkBuilder struct {
	baseURL string
}

func NewLinkBuilder(baseURL string) LinkBuilder {
	return LinkBuilder{baseURL: strings.TrimRight(baseURL, "/")}
}

func (b LinkBuilder) origin(c *gin.Context) string {
	if b.baseURL != "" {
		return b.baseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme = strings.TrimSpace(strings.Split(p, ",")[0])
	}
	return scheme + "://" + c.Request.Host
}

// Resource is the absolute URI of one item in a collection.
func (b LinkBuilder) Resource(c *gin.Context, collection, id string) string {
	return b.origin(c) + APIV1Prefix + collection + "/" + url.PathEscape(id)
}

// PageLink renders a continuation token as the relative URL that serves it.
// Empty tokens stay empty so omitempty drops them.
func PageLink(collection, token string) string {
	if token == "" {
		return ""
	}
	return APIV1Prefix + collection + "?pageLink=" + url.QueryEscape(token)
}
