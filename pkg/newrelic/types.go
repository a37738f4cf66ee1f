package newrelic

import (
	"bytes"
	"encoding/json"
)

// Scalar holds a JSON string or number as text. Timestamps and metric values
// come back in either shape depending on the resource.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler
func (s *Scalar) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	*s = Scalar(data)
	return nil
}

// ApplicationsResponse wraps GET /applications.json
type ApplicationsResponse struct {
	Applications *[]Application `json:"applications"`
}

// ApplicationResponse wraps GET /applications/{id}.json
type ApplicationResponse struct {
	Application *Application `json:"application"`
}

// Record returns the application, or nil when the key is absent or the object carries no fields
func (r ApplicationResponse) Record() *Application {
	if r.Application == nil || *r.Application == (Application{}) {
		return nil
	}
	return r.Application
}

// ServersResponse wraps GET /servers.json
type ServersResponse struct {
	Servers *[]Server `json:"servers"`
}

// AlertPoliciesResponse wraps GET /alert_policies.json
type AlertPoliciesResponse struct {
	Policies *[]AlertPolicy `json:"policies"`
}

// MetricDataResponse wraps GET /applications/{id}/metrics/data.json
type MetricDataResponse struct {
	MetricData *MetricData `json:"metric_data"`
}

// Application is an APM application
type Application struct {
	ID                 *int64               `json:"id"`
	Name               *string              `json:"name"`
	Language           *string              `json:"language"`
	HealthStatus       *string              `json:"health_status"`
	Reporting          *bool                `json:"reporting"`
	LastReportedAt     *string              `json:"last_reported_at"`
	ApplicationSummary *ApplicationSummary  `json:"application_summary"`
	EndUserSummary     *EndUserSummary      `json:"end_user_summary"`
	Settings           *ApplicationSettings `json:"settings"`
}

// ApplicationSummary holds server-side performance figures
type ApplicationSummary struct {
	ResponseTime  *float64 `json:"response_time"`
	Throughput    *float64 `json:"throughput"`
	ErrorRate     *float64 `json:"error_rate"`
	ApdexTarget   *float64 `json:"apdex_target"`
	ApdexScore    *float64 `json:"apdex_score"`
	HostCount     *int64   `json:"host_count"`
	InstanceCount *int64   `json:"instance_count"`
}

// EndUserSummary holds browser-side performance figures
type EndUserSummary struct {
	ResponseTime *float64 `json:"response_time"`
	Throughput   *float64 `json:"throughput"`
	ApdexTarget  *float64 `json:"apdex_target"`
	ApdexScore   *float64 `json:"apdex_score"`
}

// ApplicationSettings holds the application's apdex configuration
type ApplicationSettings struct {
	AppApdexThreshold        *float64 `json:"app_apdex_threshold"`
	EndUserApdexThreshold    *float64 `json:"end_user_apdex_threshold"`
	EnableRealUserMonitoring *bool    `json:"enable_real_user_monitoring"`
	UseServerSideConfig      *bool    `json:"use_server_side_config"`
}

// Server is a monitored host
type Server struct {
	ID             *int64         `json:"id"`
	AccountID      *int64         `json:"account_id"`
	Name           *string        `json:"name"`
	Host           *string        `json:"host"`
	HealthStatus   *string        `json:"health_status"`
	Reporting      *bool          `json:"reporting"`
	LastReportedAt *string        `json:"last_reported_at"`
	Summary        *ServerSummary `json:"summary"`
}

// ServerSummary holds host resource usage in percent
type ServerSummary struct {
	CPU             *float64 `json:"cpu"`
	CPUStolen       *float64 `json:"cpu_stolen"`
	DiskIO          *float64 `json:"disk_io"`
	Memory          *float64 `json:"memory"`
	MemoryUsed      *int64   `json:"memory_used"`
	MemoryTotal     *int64   `json:"memory_total"`
	FullestDisk     *float64 `json:"fullest_disk"`
	FullestDiskFree *int64   `json:"fullest_disk_free"`
}

// AlertPolicy is an alert policy
type AlertPolicy struct {
	ID                 *int64  `json:"id"`
	Name               *string `json:"name"`
	IncidentPreference *string `json:"incident_preference"`
	CreatedAt          *Scalar `json:"created_at"`
	UpdatedAt          *Scalar `json:"updated_at"`
}

// MetricData is the result of a metric query
type MetricData struct {
	From            *string  `json:"from"`
	To              *string  `json:"to"`
	MetricsNotFound []string `json:"metrics_not_found"`
	MetricsFound    []string `json:"metrics_found"`
	Metrics         []Metric `json:"metrics"`
}

// Metric is one named time series
type Metric struct {
	Name       *string     `json:"name"`
	Timeslices []Timeslice `json:"timeslices"`
}

// Timeslice is one period of a metric series
type Timeslice struct {
	From   *string           `json:"from"`
	To     *string           `json:"to"`
	Values map[string]Scalar `json:"values"`
}
