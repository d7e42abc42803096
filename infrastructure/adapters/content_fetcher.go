package adapters

import (
	"encoding/json"
	"fmt"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/domain"
	"io"
	"net/http"
)

// ContentFetcher executes gateway HTTP requests and normalizes transport
// failures and non-OK responses into *domain.ServiceError.
type ContentFetcher interface {
	FetchContent(req *http.Request, service string) ([]byte, error)
	FetchJSON(req *http.Request, service string, out interface{}) error
}

type contentFetcher struct {
	logger outbound.LoggerPort
	client *http.Client
}

func NewContentFetcher(logger outbound.LoggerPort) ContentFetcher {
	return &contentFetcher{
		logger: logger,
		client: &http.Client{},
	}
}

func (c *contentFetcher) FetchContent(req *http.Request, service string) ([]byte, error) {
	res, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorWithFields(err, "failed to send the HTTP request", map[string]interface{}{
			"service": service,
			"method":  req.Method,
			"url":     req.URL.String(),
		})
		return nil, &domain.ServiceError{Service: service, Err: err}
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Error(err, "failed to close the response body")
		}
	}(res.Body)

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "failed to read the response body", map[string]interface{}{
			"service": service,
			"url":     req.URL.String(),
		})
		return nil, &domain.ServiceError{Service: service, Err: err}
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		c.logger.ErrorWithFields(nil, "HTTP request returned non-success status code", map[string]interface{}{
			"service": service,
			"method":  req.Method,
			"url":     req.URL.String(),
			"status":  res.StatusCode,
			"message": string(payload),
		})
		return nil, &domain.ServiceError{
			Service:    service,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("%s", string(payload)),
		}
	}

	return payload, nil
}

func (c *contentFetcher) FetchJSON(req *http.Request, service string, out interface{}) error {
	payload, err := c.FetchContent(req, service)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		c.logger.ErrorWithFields(err, "failed to unmarshal the response", map[string]interface{}{
			"service": service,
			"url":     req.URL.String(),
		})
		return &domain.ServiceError{Service: service, Err: err}
	}
	return nil
}
