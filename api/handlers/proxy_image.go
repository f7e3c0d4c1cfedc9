package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// allowedImageHosts restricts the proxy to known Instagram/FB CDN hosts.
var allowedImageHosts = []string{
	"instagram.com",
	"cdninstagram.com",
	"fbcdn.net",
}

var proxyClient = &http.Client{Timeout: 10 * time.Second}

// ProxyImageHandler fetches a CDN image server-side so profile pictures can
// be rendered despite CDN CORS/CORP restrictions.
func ProxyImageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("url")
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url"})
			return
		}

		allowed := false
		for _, host := range allowedImageHosts {
			if strings.Contains(parsed.Host, host) {
				allowed = true
				break
			}
		}
		if !allowed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "host not allowed"})
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, raw, nil)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url"})
			return
		}
		req.Header.Set("User-Agent", "Mozilla/5.0")
		req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
		req.Header.Set("Referer", "https://www.instagram.com/")

		resp, err := proxyClient.Do(req)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "upstream error"})
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.JSON(resp.StatusCode, gin.H{"error": "failed to fetch image"})
			return
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.DataFromReader(http.StatusOK, resp.ContentLength, contentType, resp.Body, nil)
	}
}
