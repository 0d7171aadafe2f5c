package apiclient

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/smr-site/reviews-api/internal/api"
	internal_errors "github.com/smr-site/reviews-api/internal/errors"
)

const defaultListLimit = 500

// ListCodes returns code counts plus previews of unused and used codes.
// A non-positive limit asks for the default of 500 entries per preview.
func (c *APIClient) ListCodes(limit int) (api.CodesResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	var codes api.CodesResponse
	err := c.get("/codes", query, &codes)
	return codes, err
}

// AddCodes submits a text blob of codes, one per line. Blank lines are
// ignored server-side; any malformed line rejects the whole batch.
func (c *APIClient) AddCodes(text string) (api.AddCodesResponse, error) {
	var result api.AddCodesResponse
	err := c.postForm("/codes/add", map[string]string{"codes": text}, &result)
	return result, err
}

// DeleteCode removes a single code by exact value.
func (c *APIClient) DeleteCode(code string) (api.DeleteCodeResponse, error) {
	var result api.DeleteCodeResponse
	err := c.postForm("/codes/delete", map[string]string{"code": code}, &result)
	return result, err
}

// ExportUnusedCodesCSV downloads the unused codes as a CSV document and
// returns the raw bytes.
func (c *APIClient) ExportUnusedCodesCSV() ([]byte, error) {
	resp, err := c.do("GET", "/codes/unused.csv", nil, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read API response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &internal_errors.ErrorWithStatusCode{
			Message:    errorMessage(raw, resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	return raw, nil
}
