package echomw

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/labstack/echo/v4"
)

/*
BrotliMiddleware compresses responses with brotli for clients that accept it.

The dashboard index and the PDF downloads both benefit; clients without
"br" in Accept-Encoding get the response untouched.
*/
func BrotliMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		acceptEncoding := c.Request().Header.Get(echo.HeaderAcceptEncoding)
		if !strings.Contains(acceptEncoding, "br") {
			return next(c)
		}

		response := c.Response()
		response.Header().Set(echo.HeaderContentEncoding, "br")
		response.Header().Add(echo.HeaderVary, echo.HeaderAcceptEncoding)

		brotliWriter := brotli.NewWriterLevel(response.Writer, brotli.DefaultCompression)
		defer func() {
			_ = brotliWriter.Close()
		}()

		response.Writer = &brotliResponseWriter{
			ResponseWriter: response.Writer,
			brotliWriter:   brotliWriter,
		}

		return next(c)
	}
}

type brotliResponseWriter struct {
	http.ResponseWriter
	brotliWriter *brotli.Writer
}

func (w *brotliResponseWriter) WriteHeader(code int) {
	// The compressed length is unknown up front.
	w.Header().Del(echo.HeaderContentLength)
	w.ResponseWriter.WriteHeader(code)
}

func (w *brotliResponseWriter) Write(b []byte) (int, error) {
	return w.brotliWriter.Write(b)
}
