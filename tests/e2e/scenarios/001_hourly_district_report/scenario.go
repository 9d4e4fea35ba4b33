package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ### Start - fixed configs (no change)
// These values define deterministic telemetry and must match the verified totals.
const (
	readingMinutes     = 60 // one reading per camera per minute from 08:00 to 08:59 UTC
	camerasPerDistrict = 4
	malformedRecords   = 25 // records the consumer must skip without losing the batch
)

var (
	districts    = []string{"D1", "D2", "D3", "D4"}
	vehicleTypes = []string{"car", "motorcycle", "truck"}
)

// ### End - fixed configs

type telemetryPayload struct {
	CameraID          string           `json:"camera_id"`
	CameraName        string           `json:"camera_name"`
	District          string           `json:"district"`
	TotalCount        int64            `json:"total_count"`
	DetectionDetails  map[string]int64 `json:"detection_details"`
	Timestamp         int64            `json:"timestamp"`
	AnnotatedImageURL string           `json:"annotated_image_url,omitempty"`
}

type reportJob struct {
	ID            int64  `json:"id"`
	Status        string `json:"status"`
	FailureReason string `json:"failureReason"`
}

type reportDocument struct {
	Analysis struct {
		TotalVehicles    int64 `json:"totalVehicles"`
		DistrictAnalyses []struct {
			DistrictName  string `json:"districtName"`
			TotalVehicles int64  `json:"totalVehicles"`
		} `json:"districtAnalyses"`
	} `json:"analysis"`
}

// main runs the e2e scenario: 001_hourly_district_report
//
// This scenario drives a running service end to end. It publishes one hour of camera
// telemetry to the inbound topic, waits until the district summary API sees all of it,
// then schedules a report job for that hour and downloads the finished document.
//
// What it tests:
//   - Batch consumption from Kafka and bulk persistence to Postgres
//   - Malformed records are skipped without dropping the rest of the batch
//   - GET /api/traffic/districts/summary over a half-open range
//   - POST /api/reports, scheduler pickup, orchestration and document upload
//   - GET /api/reports/{id}/download returns the stored document
//
// Expected results:
//   - Every valid reading is persisted exactly once per run (lossy ack mode)
//   - The report job reaches COMPLETED
//   - The document totals match the generated telemetry per district
func main() {
	// these configs can be changed to run the scenario
	baseURL := getEnv("E2E_BASE_URL", "http://localhost:8080")
	brokers := strings.Split(getEnv("E2E_KAFKA_BROKERS", "localhost:9092"), ",")
	topic := getEnv("E2E_TELEMETRY_TOPIC", "traffic.telemetry")
	dateUTC := getEnv("E2E_DATE_UTC", "2025-12-28")
	writeBatchSize := getEnvInt("E2E_WRITE_BATCH_SIZE", 100)
	ingestTimeout := time.Duration(getEnvInt("E2E_INGEST_TIMEOUT_SEC", 60)) * time.Second
	reportTimeout := time.Duration(getEnvInt("E2E_REPORT_TIMEOUT_SEC", 180)) * time.Second

	windowStart, err := time.Parse(time.RFC3339, dateUTC+"T08:00:00Z")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: invalid E2E_DATE_UTC %q: %v\n", dateUTC, err)
		os.Exit(1)
	}
	windowEnd := windowStart.Add(readingMinutes * time.Minute)

	fmt.Println("Starting e2e scenario: 001_hourly_district_report")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("KAFKA_BROKERS: %s\n", strings.Join(brokers, ","))
	fmt.Printf("TELEMETRY_TOPIC: %s\n", topic)
	fmt.Printf("WINDOW: [%s, %s)\n", windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339))
	fmt.Println()

	// Generate telemetry
	payloads := generateTelemetry(windowStart)
	expected := expectedDistrictTotals(payloads)
	var expectedTotal int64
	for _, total := range expected {
		expectedTotal += total
	}
	fmt.Printf("Generated %d readings (%d vehicles) and %d malformed records\n", len(payloads), expectedTotal, malformedRecords)

	// Publish
	if err := publishTelemetry(brokers, topic, payloads, writeBatchSize); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: publish failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Telemetry published")

	// Wait for ingestion
	client := &http.Client{Timeout: 30 * time.Second}
	summaryURL := fmt.Sprintf("%s/api/traffic/districts/summary?start=%s&end=%s", baseURL, windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339))
	seen, err := waitForIngestion(client, summaryURL, expectedTotal, ingestTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: ingestion incomplete (seen %d of %d vehicles): %v\n", seen, expectedTotal, err)
		os.Exit(1)
	}
	fmt.Printf("Ingestion complete: %d vehicles visible\n", seen)

	// Schedule the report
	job, err := createReport(client, baseURL, windowStart, windowEnd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: create report failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report job %d created (status %s)\n", job.ID, job.Status)

	job, err = waitForReport(client, baseURL, job.ID, reportTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: report job %d did not complete: %v\n", job.ID, err)
		os.Exit(1)
	}

	// Download and verify
	document, err := downloadReport(client, baseURL, job.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: download failed: %v\n", err)
		os.Exit(1)
	}

	var mismatches []string
	if document.Analysis.TotalVehicles != expectedTotal {
		mismatches = append(mismatches, fmt.Sprintf("totalVehicles=%d want %d", document.Analysis.TotalVehicles, expectedTotal))
	}
	for _, district := range document.Analysis.DistrictAnalyses {
		if want := expected[district.DistrictName]; district.TotalVehicles != want {
			mismatches = append(mismatches, fmt.Sprintf("%s=%d want %d", district.DistrictName, district.TotalVehicles, want))
		}
	}
	if len(document.Analysis.DistrictAnalyses) != len(expected) {
		mismatches = append(mismatches, fmt.Sprintf("districts=%d want %d", len(document.Analysis.DistrictAnalyses), len(expected)))
	}

	fmt.Println()
	fmt.Println("=== Statistics ===")
	fmt.Printf("Readings published: %d\n", len(payloads))
	fmt.Printf("Malformed records published: %d\n", malformedRecords)
	fmt.Printf("Expected vehicles: %d\n", expectedTotal)
	fmt.Printf("Report vehicles: %d\n", document.Analysis.TotalVehicles)
	for _, district := range districts {
		fmt.Printf("  %s: %d\n", district, expected[district])
	}

	if len(mismatches) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: report does not match telemetry: %s\n", strings.Join(mismatches, ", "))
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func generateTelemetry(windowStart time.Time) []telemetryPayload {
	payloads := make([]telemetryPayload, 0, readingMinutes*len(districts)*camerasPerDistrict)
	for minute := 0; minute < readingMinutes; minute++ {
		capturedAt := windowStart.Add(time.Duration(minute)*time.Minute + 30*time.Second)
		for d, district := range districts {
			for c := 0; c < camerasPerDistrict; c++ {
				details := make(map[string]int64, len(vehicleTypes))
				var total int64
				for v, vehicleType := range vehicleTypes {
					count := int64((d+1)*(c+1) + (minute+v)%7)
					details[vehicleType] = count
					total += count
				}
				details["person"] = int64(minute % 3)

				cameraID := fmt.Sprintf("cam-%s-%02d", strings.ToLower(district), c+1)
				payload := telemetryPayload{
					CameraID:         cameraID,
					CameraName:       fmt.Sprintf("Camera %d of %s", c+1, district),
					District:         district,
					TotalCount:       total,
					DetectionDetails: details,
					Timestamp:        capturedAt.UnixMilli(),
				}
				if minute%10 == 0 {
					payload.AnnotatedImageURL = fmt.Sprintf("https://images.example.test/%s/%d.jpg", cameraID, capturedAt.Unix())
				}
				payloads = append(payloads, payload)
			}
		}
	}
	return payloads
}

func expectedDistrictTotals(payloads []telemetryPayload) map[string]int64 {
	totals := make(map[string]int64, len(districts))
	for _, payload := range payloads {
		totals[payload.District] += payload.TotalCount
	}
	return totals
}

func publishTelemetry(brokers []string, topic string, payloads []telemetryPayload, batchSize int) error {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    batchSize,
		RequiredAcks: kafka.RequireAll,
	}
	defer writer.Close()

	messages := make([]kafka.Message, 0, len(payloads)+malformedRecords)
	for _, payload := range payloads {
		value, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode reading of %s: %w", payload.CameraID, err)
		}
		messages = append(messages, kafka.Message{Key: []byte(payload.CameraID), Value: value})
	}
	for i := 0; i < malformedRecords; i++ {
		value := []byte(`{"district":"D1","total_count":5}`)
		if i%2 == 0 {
			value = []byte("not json")
		}
		messages = append(messages, kafka.Message{Key: []byte(fmt.Sprintf("malformed-%d", i)), Value: value})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	for start := 0; start < len(messages); start += batchSize {
		end := min(start+batchSize, len(messages))
		if err := writer.WriteMessages(ctx, messages[start:end]...); err != nil {
			return fmt.Errorf("failed to write messages %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func waitForIngestion(client *http.Client, summaryURL string, expectedTotal int64, timeout time.Duration) (int64, error) {
	deadline := time.Now().Add(timeout)
	var seen int64
	for time.Now().Before(deadline) {
		var summaries []struct {
			TotalCount int64 `json:"totalCount"`
		}
		if err := getJSON(client, summaryURL, &summaries); err != nil {
			return seen, err
		}
		seen = 0
		for _, summary := range summaries {
			seen += summary.TotalCount
		}
		if seen >= expectedTotal {
			return seen, nil
		}
		time.Sleep(2 * time.Second)
	}
	return seen, fmt.Errorf("timed out after %s", timeout)
}

func createReport(client *http.Client, baseURL string, start, end time.Time) (*reportJob, error) {
	body, err := json.Marshal(map[string]any{
		"name":            "E2E hourly district report",
		"startTime":       start.Format(time.RFC3339),
		"endTime":         end.Format(time.RFC3339),
		"intervalMinutes": 15,
		"districts":       districts,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(baseURL+"/api/reports", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		message, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(message)))
	}
	var job reportJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	return &job, nil
}

func waitForReport(client *http.Client, baseURL string, id int64, timeout time.Duration) (*reportJob, error) {
	deadline := time.Now().Add(timeout)
	job := &reportJob{ID: id}
	for time.Now().Before(deadline) {
		if err := getJSON(client, fmt.Sprintf("%s/api/reports/%d", baseURL, id), job); err != nil {
			return job, err
		}
		switch job.Status {
		case "COMPLETED":
			return job, nil
		case "FAILED":
			return job, fmt.Errorf("job failed: %s", job.FailureReason)
		}
		time.Sleep(2 * time.Second)
	}
	return job, fmt.Errorf("timed out after %s in status %s", timeout, job.Status)
}

func downloadReport(client *http.Client, baseURL string, id int64) (*reportDocument, error) {
	var document reportDocument
	if err := getJSON(client, fmt.Sprintf("%s/api/reports/%d/download", baseURL, id), &document); err != nil {
		return nil, err
	}
	return &document, nil
}

func getJSON(client *http.Client, url string, dst any) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		message, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: HTTP %d: %s", url, resp.StatusCode, strings.TrimSpace(string(message)))
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
