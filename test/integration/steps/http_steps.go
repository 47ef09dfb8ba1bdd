package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

var factorPlaceholder = regexp.MustCompile(`\{\{factor:([^}]+)\}\}`)

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSendRequestsToWithBody(times int, method, path string, body *godog.DocString) error {
	for i := 0; i < times; i++ {
		if err := t.iSendARequestToWithBody(method, path, body); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID)
	return factorPlaceholder.ReplaceAllStringFunc(content, func(m string) string {
		name := factorPlaceholder.FindStringSubmatch(m)[1]
		if id, ok := t.factorIDs[name]; ok {
			return id.String()
		}
		return m
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Register, login and refresh rotate the session tokens.
	if access, ok := responseBody["access_token"].(string); ok && resp.StatusCode < http.StatusMultipleChoices {
		t.accessToken = access
		t.refreshToken, _ = responseBody["refresh_token"].(string)
	}

	// Later steps refer to the created resource as {{last_id}}.
	if id, ok := responseBody["id"].(string); ok && resp.StatusCode == http.StatusCreated {
		t.lastID = id
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldExist(name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.headers.Get(name) == "" {
		return fmt.Errorf("header '%s' not set", name)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

// getFieldValue walks a dot-separated path; numeric segments index into lists.
func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
