package enhancer

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	. "github.com/Luismorlan/nashbites/utils/log"
	"github.com/pkg/errors"
)

type HttpClient struct {
	header http.Header

	client *http.Client
}

func NewHttpClient(header http.Header, timeout time.Duration) *HttpClient {
	return &HttpClient{header: header, client: &http.Client{Timeout: timeout}}
}

// Post sends body to uri with the client's headers. Any non 2XX response is
// turned into an error.
func (c *HttpClient) Post(ctx context.Context, uri string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, body)
	if err != nil {
		return nil, err
	}
	req.Header = c.header.Clone()
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if IsNon200HttpResponse(res) {
		MaybeLogNon200HttpError(res)
		res.Body.Close()
		return nil, errors.Errorf("non-200 http code: %d", res.StatusCode)
	}

	return res, nil
}

// Log http response if the error code is not 2XX
func MaybeLogNon200HttpError(res *http.Response) {
	if IsNon200HttpResponse(res) {
		Log.Errorf("non-200 http code: %d", res.StatusCode)
		LogHttpResponseBody(res)
	}
}

func IsNon200HttpResponse(res *http.Response) bool {
	return res.StatusCode >= 300
}

func LogHttpResponseBody(res *http.Response) {
	body, err := ioutil.ReadAll(res.Body)
	if err == nil {
		Log.Errorln("response body is: ", string(body))
	}
}
