package lookerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lookbench/lookaudit/internal/catalog"
)

const (
	apiPathPrefixConstant            = "/api/4.0"
	loginPathConstant                = "/login"
	dashboardsPathConstant           = "/dashboards"
	looksPathConstant                = "/looks"
	usersPathConstant                = "/users"
	foldersPathConstant              = "/folders"
	contentValidationPathConstant    = "/content_validation"
	inlineQueryPathConstant          = "/queries/run/json"
	dashboardUpdatePathTemplate      = "/dashboards/%s"
	lookUpdatePathTemplate           = "/looks/%s"
	clientIDFormFieldConstant        = "client_id"
	clientSecretFormFieldConstant    = "client_secret"
	fieldsQueryParameterConstant     = "fields"
	authorizationHeaderConstant      = "Authorization"
	authorizationValueTemplate       = "token %s"
	contentTypeHeaderConstant        = "Content-Type"
	jsonContentTypeConstant          = "application/json"
	formContentTypeConstant          = "application/x-www-form-urlencoded"
	dashboardListFieldsConstant      = "id,title,user_id,folder,created_at"
	lookListFieldsConstant           = "id,title,user_id,folder,created_at"
	userListFieldsConstant           = "id,first_name,last_name,email"
	folderListFieldsConstant         = "id,parent_id,name"
	requestFailureTemplateConstant   = "%s request failed: %w"
	statusFailureTemplateConstant    = "%s request returned status %d"
	decodeFailureTemplateConstant    = "%s response decoding failed: %w"
	encodeFailureTemplateConstant    = "%s payload encoding failed: %w"
	loginOperationNameConstant       = "login"
	dashboardsOperationNameConstant  = "all dashboards"
	looksOperationNameConstant       = "all looks"
	usersOperationNameConstant       = "all users"
	foldersOperationNameConstant     = "all folders"
	validationOperationNameConstant  = "content validation"
	usageQueryOperationNameConstant  = "content usage query"
	modelQueryOperationNameConstant  = "model usage query"
	softDeleteOperationNameConstant  = "soft delete"
	systemActivityModelConstant      = "system__activity"
	contentUsageViewConstant         = "content_usage"
	historyViewConstant              = "history"
	notDeletedFilterValueConstant    = "NULL"
	contentTypeFilterValueConstant   = "dashboard,look"
	anyContentFilterExpressionOnly   = "NOT(is_null(${dashboard.id}) AND is_null(${look.id}))"
	daysSinceAccessFilterTemplate    = ">%d"
	daysSinceAccessFilterKeyConstant = "content_usage.days_since_last_accessed"
)

// Client calls the Looker REST API on behalf of the audit commands. Construct
// it with NewClient and authenticate with Login before issuing requests.
type Client struct {
	httpClient  *http.Client
	profile     Profile
	accessToken string
}

// NewClient builds a client for the given connection profile.
func NewClient(profile Profile, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: profile.RequestTimeout}
	}
	return &Client{
		httpClient: httpClient,
		profile:    profile,
	}
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges the profile's API credentials for an access token used by
// all subsequent requests.
func (client *Client) Login(executionContext context.Context) error {
	loginForm := url.Values{}
	loginForm.Set(clientIDFormFieldConstant, client.profile.ClientID)
	loginForm.Set(clientSecretFormFieldConstant, client.profile.ClientSecret)

	request, requestError := http.NewRequestWithContext(
		executionContext,
		http.MethodPost,
		client.apiURL(loginPathConstant, nil),
		strings.NewReader(loginForm.Encode()),
	)
	if requestError != nil {
		return fmt.Errorf(requestFailureTemplateConstant, loginOperationNameConstant, requestError)
	}
	request.Header.Set(contentTypeHeaderConstant, formContentTypeConstant)

	var decodedResponse loginResponse
	if callError := client.execute(request, loginOperationNameConstant, &decodedResponse); callError != nil {
		return callError
	}

	client.accessToken = decodedResponse.AccessToken
	return nil
}

// AllDashboards lists every dashboard in the catalog.
func (client *Client) AllDashboards(executionContext context.Context) ([]catalog.ContentItem, error) {
	var resources []contentResource
	if callError := client.getJSON(executionContext, dashboardsPathConstant, dashboardListFieldsConstant, dashboardsOperationNameConstant, &resources); callError != nil {
		return nil, callError
	}
	return convertContentResources(resources, catalog.ContentTypeDashboard), nil
}

// AllLooks lists every look in the catalog.
func (client *Client) AllLooks(executionContext context.Context) ([]catalog.ContentItem, error) {
	var resources []contentResource
	if callError := client.getJSON(executionContext, looksPathConstant, lookListFieldsConstant, looksOperationNameConstant, &resources); callError != nil {
		return nil, callError
	}
	return convertContentResources(resources, catalog.ContentTypeLook), nil
}

// AllUsers lists the instance user directory.
func (client *Client) AllUsers(executionContext context.Context) ([]catalog.User, error) {
	var resources []userResource
	if callError := client.getJSON(executionContext, usersPathConstant, userListFieldsConstant, usersOperationNameConstant, &resources); callError != nil {
		return nil, callError
	}
	return convertUserResources(resources), nil
}

// AllFolders lists the full folder hierarchy.
func (client *Client) AllFolders(executionContext context.Context) ([]catalog.Folder, error) {
	var resources []folderResource
	if callError := client.getJSON(executionContext, foldersPathConstant, folderListFieldsConstant, foldersOperationNameConstant, &resources); callError != nil {
		return nil, callError
	}
	return convertFolderResources(resources), nil
}

// ContentValidation runs the content validator and returns its findings.
func (client *Client) ContentValidation(executionContext context.Context) ([]catalog.ValidationError, error) {
	var decodedResponse contentValidationResponse
	if callError := client.getJSON(executionContext, contentValidationPathConstant, "", validationOperationNameConstant, &decodedResponse); callError != nil {
		return nil, callError
	}
	return convertValidationResources(decodedResponse.ContentWithErrors), nil
}

// ContentUsage queries the system activity model for per-content usage
// statistics. daysSinceLastAccessed, when positive, restricts results to
// content idle for more than that many days.
func (client *Client) ContentUsage(executionContext context.Context, daysSinceLastAccessed int) ([]catalog.UsageRecord, error) {
	filters := map[string]string{
		"content_usage.content_type": contentTypeFilterValueConstant,
		"dashboard.deleted_date":     notDeletedFilterValueConstant,
		"look.deleted_date":          notDeletedFilterValueConstant,
	}
	if daysSinceLastAccessed > 0 {
		filters[daysSinceAccessFilterKeyConstant] = fmt.Sprintf(daysSinceAccessFilterTemplate, daysSinceLastAccessed)
	}

	queryRequest := inlineQueryRequest{
		Model: systemActivityModelConstant,
		View:  contentUsageViewConstant,
		Fields: []string{
			"dashboard.id",
			"look.id",
			"dashboard.created_date",
			"look.created_date",
			"content_usage.content_title",
			"content_usage.content_type",
			"content_usage.embed_total",
			"content_usage.api_total",
			"content_usage.favorites_total",
			"content_usage.schedule_total",
			"content_usage.other_total",
			"content_usage.last_accessed_date",
		},
		Filters:          filters,
		FilterExpression: anyContentFilterExpressionOnly,
	}

	var rows []contentUsageRow
	if callError := client.postJSON(executionContext, inlineQueryPathConstant, queryRequest, usageQueryOperationNameConstant, &rows); callError != nil {
		return nil, callError
	}
	return convertContentUsageRows(rows), nil
}

// ModelUsage queries the system activity history for (content id, query model)
// pairs of the requested content type. Rows may repeat a content id and may
// carry no model when the recorded query was deleted.
func (client *Client) ModelUsage(executionContext context.Context, contentType catalog.ContentType) ([]catalog.ModelUsageRow, error) {
	contentIDField := "dashboard.id"
	if contentType == catalog.ContentTypeLook {
		contentIDField = "look.id"
	}

	queryRequest := inlineQueryRequest{
		Model:  systemActivityModelConstant,
		View:   historyViewConstant,
		Fields: []string{contentIDField, "query.model"},
	}

	var rows []modelUsageQueryRow
	if callError := client.postJSON(executionContext, inlineQueryPathConstant, queryRequest, modelQueryOperationNameConstant, &rows); callError != nil {
		return nil, callError
	}
	return convertModelUsageRows(rows, contentType), nil
}

type softDeletePayload struct {
	Deleted bool `json:"deleted"`
}

// SetDashboardDeleted toggles a dashboard's soft-deleted state.
func (client *Client) SetDashboardDeleted(executionContext context.Context, dashboardID string, deleted bool) error {
	return client.patchJSON(executionContext, fmt.Sprintf(dashboardUpdatePathTemplate, dashboardID), softDeletePayload{Deleted: deleted}, softDeleteOperationNameConstant)
}

// SetLookDeleted toggles a look's soft-deleted state.
func (client *Client) SetLookDeleted(executionContext context.Context, lookID string, deleted bool) error {
	return client.patchJSON(executionContext, fmt.Sprintf(lookUpdatePathTemplate, lookID), softDeletePayload{Deleted: deleted}, softDeleteOperationNameConstant)
}

func (client *Client) apiURL(path string, queryParameters url.Values) string {
	endpoint := strings.TrimRight(client.profile.BaseURL, "/") + apiPathPrefixConstant + path
	if len(queryParameters) > 0 {
		endpoint += "?" + queryParameters.Encode()
	}
	return endpoint
}

func (client *Client) getJSON(executionContext context.Context, path string, fields string, operationName string, target any) error {
	queryParameters := url.Values{}
	if len(fields) > 0 {
		queryParameters.Set(fieldsQueryParameterConstant, fields)
	}

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodGet, client.apiURL(path, queryParameters), nil)
	if requestError != nil {
		return fmt.Errorf(requestFailureTemplateConstant, operationName, requestError)
	}
	return client.executeAuthorized(request, operationName, target)
}

func (client *Client) postJSON(executionContext context.Context, path string, payload any, operationName string, target any) error {
	encodedPayload, encodeError := json.Marshal(payload)
	if encodeError != nil {
		return fmt.Errorf(encodeFailureTemplateConstant, operationName, encodeError)
	}

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodPost, client.apiURL(path, nil), bytes.NewReader(encodedPayload))
	if requestError != nil {
		return fmt.Errorf(requestFailureTemplateConstant, operationName, requestError)
	}
	request.Header.Set(contentTypeHeaderConstant, jsonContentTypeConstant)
	return client.executeAuthorized(request, operationName, target)
}

func (client *Client) patchJSON(executionContext context.Context, path string, payload any, operationName string) error {
	encodedPayload, encodeError := json.Marshal(payload)
	if encodeError != nil {
		return fmt.Errorf(encodeFailureTemplateConstant, operationName, encodeError)
	}

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodPatch, client.apiURL(path, nil), bytes.NewReader(encodedPayload))
	if requestError != nil {
		return fmt.Errorf(requestFailureTemplateConstant, operationName, requestError)
	}
	request.Header.Set(contentTypeHeaderConstant, jsonContentTypeConstant)
	return client.executeAuthorized(request, operationName, nil)
}

func (client *Client) executeAuthorized(request *http.Request, operationName string, target any) error {
	if len(client.accessToken) > 0 {
		request.Header.Set(authorizationHeaderConstant, fmt.Sprintf(authorizationValueTemplate, client.accessToken))
	}
	return client.execute(request, operationName, target)
}

func (client *Client) execute(request *http.Request, operationName string, target any) error {
	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		return fmt.Errorf(requestFailureTemplateConstant, operationName, responseError)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, response.Body)
		_ = response.Body.Close()
	}()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf(statusFailureTemplateConstant, operationName, response.StatusCode)
	}

	if target == nil {
		return nil
	}

	if decodeError := json.NewDecoder(response.Body).Decode(target); decodeError != nil {
		return fmt.Errorf(decodeFailureTemplateConstant, operationName, decodeError)
	}
	return nil
}
