package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ServiceClient provides a client
// for making requests and decoding responses
// to the block resolver cache service API
type ServiceClient struct {
	*http.Client
	config            ServiceClientConfig
	DebugLogResponses bool
}

// ServiceClientConfig wraps values used to
// create a new ServiceClient
type ServiceClientConfig struct {
	ServiceHostname   string
	DebugLogResponses bool
}

// NewServiceClient creates a new ServiceClient
// using the provided config, returning the client and error (if any)
func NewServiceClient(config ServiceClientConfig) (*ServiceClient, error) {
	httpClient := &http.Client{}
	return &ServiceClient{
		Client:            httpClient,
		DebugLogResponses: config.DebugLogResponses,
		config:            config,
	}, nil
}

// GetCacheStatus calls `CacheStatusPath` to get the network and block
// the service pins for block (the service default when empty)
func (c *ServiceClient) GetCacheStatus(ctx context.Context, block string) (CacheStatusResponse, error) {
	var response CacheStatusResponse

	request, err := CreateRequest(http.MethodGet, c.statusURL(CacheStatusPath, block), nil)
	if err != nil {
		return response, err
	}

	err = Call(*c, request.WithContext(ctx), &response)

	return response, err
}

// GetChainStatus calls `ChainStatusPath` to get the chain id and
// block header at block (the service default when empty)
func (c *ServiceClient) GetChainStatus(ctx context.Context, block string) (ChainStatusResponse, error) {
	var response ChainStatusResponse

	request, err := CreateRequest(http.MethodGet, c.statusURL(ChainStatusPath, block), nil)
	if err != nil {
		return response, err
	}

	err = Call(*c, request.WithContext(ctx), &response)

	return response, err
}

func (c *ServiceClient) statusURL(path string, block string) string {
	statusURL := c.config.ServiceHostname + path
	if block != "" {
		statusURL += "?" + url.Values{BlockQueryParam: []string{block}}.Encode()
	}
	return statusURL
}

// RequestError provides additional details about the failed request.
type RequestError struct {
	message    string
	URL        string
	StatusCode int
}

// Error implements the error interface for RequestError.
func (err *RequestError) Error() string {
	return err.message
}

// NewError creates a new RequestError
func NewError(message, url string, statusCode int) error {
	return &RequestError{message, url, statusCode}
}

// CreateRequest isolates duplicate code in creating http search request.
func CreateRequest(method string, path string, params interface{}) (*http.Request, error) {
	var buf bytes.Buffer
	var req *http.Request
	err := json.NewEncoder(&buf).Encode(&params)
	if err != nil {
		return req, err
	}
	req, err = http.NewRequest(method, path, &buf)
	if err != nil {
		return req, &RequestError{
			URL:     path,
			message: err.Error(),
		}
	}
	return req, nil
}

// Call makes an http request to a JSON HTTP api
// decoding the JSON response to the result interface if non-nil
// returning error (if any)
func Call(client ServiceClient, request *http.Request, result interface{}) error {
	response, err := client.Do(request)

	if err != nil {
		return &RequestError{
			URL:     request.URL.String(),
			message: err.Error(),
		}
	}

	defer response.Body.Close()

	if !(response.StatusCode >= 200 && response.StatusCode <= 299) {
		requestURL := request.URL.String()
		return &RequestError{
			StatusCode: response.StatusCode,
			URL:        requestURL,
			message:    fmt.Sprintf("request to %s error server http error %d", requestURL, response.StatusCode),
		}
	}

	// If no result is expected, don't attempt to decode a potentially
	// empty response stream and avoid incurring EOF errors
	if result == nil {
		return nil
	}
	// Check if debug is on
	if client.DebugLogResponses {
		var bodyBytes []byte
		if response.Body != nil {
			bodyBytes, err = io.ReadAll(response.Body)
			if err != nil {
				return &RequestError{
					URL:     request.URL.String(),
					message: err.Error(),
				}
			}
			fmt.Printf("Request Path %s \n Response Body %s \n  Response Status Code %d \n ", request.URL, string(bodyBytes), response.StatusCode)

		}
		// Repopulate body with the data read
		response.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}
	err = json.NewDecoder(response.Body).Decode(&result)
	if err != nil {
		return &RequestError{
			URL:     request.URL.String(),
			message: err.Error(),
		}
	}
	return nil
}
