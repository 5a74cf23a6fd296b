package airtable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

const contentType = "application/json"

// UpsertMode selects between creating new records and patching existing ones.
type UpsertMode string

const (
	ModeInsert UpsertMode = "insert"
	ModeUpdate UpsertMode = "update"
)

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

type writeRequest struct {
	Records []Record `json:"records"`
}

// FetchAll returns every record of the table, following Airtable offset
// pagination. A transport or API error is returned to the caller instead of
// being folded into an empty result.
func (c *Client) FetchAll(table string) ([]Record, error) {
	var records []Record

	offset := ""
	for {
		q := url.Values{}
		if offset != "" {
			q.Set("offset", offset)
		}

		var page listResponse
		if err := c.getJSON(c.tableURL(table), q, &page); err != nil {
			return nil, fmt.Errorf("fetch records from table %s: %w", table, err)
		}

		records = append(records, page.Records...)

		if page.Offset == "" {
			break
		}

		c.logger.Debug("additional page needed",
			zap.String("table", table),
			zap.Int("fetched so far", len(records)),
		)
		offset = page.Offset
	}

	return records, nil
}

// Upsert writes one batch of records to the table. ModeInsert POSTs new
// records, ModeUpdate PATCHes fields of existing records by id. The caller is
// responsible for keeping batches within MaxBatchSize.
func (c *Client) Upsert(table string, records []Record, mode UpsertMode) error {
	if len(records) == 0 {
		return nil
	}

	method := http.MethodPatch
	if mode == ModeInsert {
		method = http.MethodPost
	}

	body, err := json.Marshal(writeRequest{Records: records})
	if err != nil {
		return fmt.Errorf("marshal records for table %s: %w", table, err)
	}

	req, err := http.NewRequestWithContext(c.ctx, method, c.tableURL(table), bytes.NewReader(body))
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.request(req)
	if err != nil {
		return fmt.Errorf("upsert %d records to table %s: %w", len(records), table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upsert %d records to table %s: bad status: %s: %s", len(records), table, resp.Status, excerpt)
	}

	c.logger.Debug("upserted records",
		zap.String("table", table),
		zap.String("mode", string(mode)),
		zap.Int("count", len(records)),
	)

	return nil
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.APIURL, c.baseID, table)
}

func (c *Client) getJSON(u string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return err
	}

	return nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return nil, err
	}

	c.logger.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))

	return req
}
