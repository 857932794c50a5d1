package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// LoadTestConfig holds configuration for load testing
type LoadTestConfig struct {
	BaseURL         string
	NumUsers        int
	NumFilms        int
	ConcurrentUsers int
	RequestsPerUser int
}

// Validate rejects settings that would leave the test with nothing to do
func (c LoadTestConfig) Validate() error {
	if c.NumUsers < 2 || c.NumFilms < 1 {
		return fmt.Errorf("need at least 2 users and 1 film, got %d and %d", c.NumUsers, c.NumFilms)
	}
	if c.ConcurrentUsers <= 0 {
		return fmt.Errorf("concurrent must be positive, got %d", c.ConcurrentUsers)
	}
	if c.RequestsPerUser <= 0 {
		return fmt.Errorf("requests must be positive, got %d", c.RequestsPerUser)
	}
	return nil
}

// LoadTestResult holds the results of load testing
type LoadTestResult struct {
	TotalRequests     int
	SuccessfulReqs    int
	RejectedReqs      int
	FailedReqs        int
	AvgResponseTimeMs float64
	MaxResponseTimeMs int64
	MinResponseTimeMs int64
	ThroughputRPS     float64
	ErrorsByType      map[string]int
	AsymmetricFriends int
}

// LoadTester fires concurrent like and friendship requests at a running server
type LoadTester struct {
	config    LoadTestConfig
	client    *http.Client
	runID     string
	users     []int64
	films     []int64
	results   LoadTestResult
	mutex     sync.Mutex
	startTime time.Time
}

// NewLoadTester creates a new load tester
func NewLoadTester(config LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		runID: strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		results: LoadTestResult{
			ErrorsByType: make(map[string]int),
		},
	}
}

type entityID struct {
	ID int64 `json:"id"`
}

// Initialize creates the users and films the test will like and befriend
func (lt *LoadTester) Initialize() error {
	fmt.Printf("Seeding %d users and %d films (run %s)...\n", lt.config.NumUsers, lt.config.NumFilms, lt.runID)

	for i := 0; i < lt.config.NumUsers; i++ {
		body := map[string]interface{}{
			"email":    fmt.Sprintf("lt_%s_%d@example.com", lt.runID, i),
			"login":    fmt.Sprintf("lt_%s_%d", lt.runID, i),
			"birthday": "1990-01-01",
		}
		id, err := lt.create("/users", body)
		if err != nil {
			return fmt.Errorf("failed to seed user %d: %w", i, err)
		}
		lt.users = append(lt.users, id)
	}

	for i := 0; i < lt.config.NumFilms; i++ {
		body := map[string]interface{}{
			"name":        fmt.Sprintf("Load test film %s #%d", lt.runID, i),
			"description": "generated by filmorate loadtest",
			"releaseDate": "2000-01-01",
			"duration":    90 + i,
		}
		id, err := lt.create("/films", body)
		if err != nil {
			return fmt.Errorf("failed to seed film %d: %w", i, err)
		}
		lt.films = append(lt.films, id)
	}

	return nil
}

func (lt *LoadTester) create(path string, body interface{}) (int64, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	resp, err := lt.client.Post(lt.config.BaseURL+path, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var created entityID
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	return created.ID, nil
}

// RunLoadTest executes the load test
func (lt *LoadTester) RunLoadTest() {
	fmt.Printf("Starting load test with %d concurrent users...\n", lt.config.ConcurrentUsers)

	lt.startTime = time.Now()
	var wg sync.WaitGroup

	// Create semaphore to limit concurrent requests
	semaphore := make(chan struct{}, lt.config.ConcurrentUsers)

	totalRequests := lt.config.ConcurrentUsers * lt.config.RequestsPerUser

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)

		go func(requestID int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			lt.simulateRequest(requestID)
		}(i)
	}

	wg.Wait()

	lt.calculateMetrics()
	lt.verifyFriendSymmetry()
	lt.printResults()
}

// simulateRequest alternates between liking a film and befriending another user
func (lt *LoadTester) simulateRequest(requestID int) {
	userID := lt.users[requestID%len(lt.users)]

	var path string
	if requestID%2 == 0 {
		filmID := lt.films[(requestID/2)%len(lt.films)]
		path = fmt.Sprintf("/films/%d/like/%d", filmID, userID)
	} else {
		friendID := lt.users[(requestID/2+1)%len(lt.users)]
		path = fmt.Sprintf("/users/%d/friends/%d", userID, friendID)
	}

	startTime := time.Now()
	req, err := http.NewRequest(http.MethodPut, lt.config.BaseURL+path, nil)
	if err != nil {
		lt.recordError("build_request")
		return
	}

	resp, err := lt.client.Do(req)
	if err != nil {
		lt.recordError("http_request")
		return
	}
	defer resp.Body.Close()

	lt.recordResponse(resp.StatusCode, time.Since(startTime))
}

// recordResponse records the response metrics
func (lt *LoadTester) recordResponse(statusCode int, responseTime time.Duration) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	responseTimeMs := responseTime.Milliseconds()

	if lt.results.MaxResponseTimeMs < responseTimeMs {
		lt.results.MaxResponseTimeMs = responseTimeMs
	}
	if lt.results.MinResponseTimeMs == 0 || lt.results.MinResponseTimeMs > responseTimeMs {
		lt.results.MinResponseTimeMs = responseTimeMs
	}

	currentAvg := lt.results.AvgResponseTimeMs
	currentCount := float64(lt.results.TotalRequests)
	lt.results.AvgResponseTimeMs = (currentAvg*(currentCount-1) + float64(responseTimeMs)) / currentCount

	switch {
	case statusCode >= 200 && statusCode < 300:
		lt.results.SuccessfulReqs++
	case statusCode == http.StatusBadRequest: // duplicate like, self or repeated friendship
		lt.results.RejectedReqs++
	default:
		lt.results.FailedReqs++
		lt.results.ErrorsByType[fmt.Sprintf("http_%d", statusCode)]++
	}
}

// recordError records an error that occurred during testing
func (lt *LoadTester) recordError(errorType string) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	lt.results.FailedReqs++
	lt.results.ErrorsByType[errorType]++
}

// calculateMetrics calculates final test metrics
func (lt *LoadTester) calculateMetrics() {
	totalDuration := time.Since(lt.startTime)
	lt.results.ThroughputRPS = float64(lt.results.TotalRequests) / totalDuration.Seconds()
}

// verifyFriendSymmetry checks that every friendship is visible from both sides
func (lt *LoadTester) verifyFriendSymmetry() {
	friends := make(map[int64]map[int64]bool, len(lt.users))
	for _, id := range lt.users {
		resp, err := lt.client.Get(fmt.Sprintf("%s/users/%d/friends", lt.config.BaseURL, id))
		if err != nil {
			lt.results.ErrorsByType["verify_request"]++
			continue
		}
		var list []entityID
		err = json.NewDecoder(resp.Body).Decode(&list)
		resp.Body.Close()
		if err != nil {
			lt.results.ErrorsByType["verify_decode"]++
			continue
		}
		friends[id] = make(map[int64]bool, len(list))
		for _, f := range list {
			friends[id][f.ID] = true
		}
	}

	for id, set := range friends {
		for friendID := range set {
			if other, ok := friends[friendID]; ok && !other[id] {
				lt.results.AsymmetricFriends++
			}
		}
	}
}

// printResults displays the load test results
func (lt *LoadTester) printResults() {
	total := float64(lt.results.TotalRequests)
	if total == 0 {
		total = 1
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Printf("Test Configuration:\n")
	fmt.Printf("  - Concurrent Users: %d\n", lt.config.ConcurrentUsers)
	fmt.Printf("  - Requests per User: %d\n", lt.config.RequestsPerUser)
	fmt.Printf("  - Seeded Users: %d\n", lt.config.NumUsers)
	fmt.Printf("  - Seeded Films: %d\n", lt.config.NumFilms)

	fmt.Printf("\nOverall Performance:\n")
	fmt.Printf("  - Total Requests: %d\n", lt.results.TotalRequests)
	fmt.Printf("  - Successful: %d (%.2f%%)\n", lt.results.SuccessfulReqs, float64(lt.results.SuccessfulReqs)/total*100)
	fmt.Printf("  - Rejected (duplicates): %d (%.2f%%)\n", lt.results.RejectedReqs, float64(lt.results.RejectedReqs)/total*100)
	fmt.Printf("  - Failed: %d (%.2f%%)\n", lt.results.FailedReqs, float64(lt.results.FailedReqs)/total*100)

	fmt.Printf("\nResponse Time Metrics:\n")
	fmt.Printf("  - Average: %.2f ms\n", lt.results.AvgResponseTimeMs)
	fmt.Printf("  - Minimum: %d ms\n", lt.results.MinResponseTimeMs)
	fmt.Printf("  - Maximum: %d ms\n", lt.results.MaxResponseTimeMs)
	fmt.Printf("  - Requests per Second: %.2f\n", lt.results.ThroughputRPS)

	if len(lt.results.ErrorsByType) > 0 {
		fmt.Printf("\nError Breakdown:\n")
		for errorType, count := range lt.results.ErrorsByType {
			fmt.Printf("  - %s: %d\n", errorType, count)
		}
	}

	fmt.Printf("\nConsistency:\n")
	if lt.results.AsymmetricFriends == 0 {
		fmt.Printf("  - Friendships are symmetric\n")
	} else {
		fmt.Printf("  - %d one-sided friendships found\n", lt.results.AsymmetricFriends)
	}
}

// loadtestCmd represents the loadtest command
var loadtestCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Run load tests against the Filmorate API",
	Long: `Seed users and films on a running Filmorate server, then send
concurrent like and friendship requests and report latency, throughput
and whether every friendship is still visible from both sides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoadTest()
	},
}

var (
	baseURL         string
	numUsers        int
	numFilms        int
	concurrentUsers int
	requestsPerUser int
)

func init() {
	rootCmd.AddCommand(loadtestCmd)

	loadtestCmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8080", "Base URL of the Filmorate API")
	loadtestCmd.Flags().IntVar(&numUsers, "users", 50, "Number of users to seed")
	loadtestCmd.Flags().IntVar(&numFilms, "films", 20, "Number of films to seed")
	loadtestCmd.Flags().IntVar(&concurrentUsers, "concurrent", 20, "Number of concurrent clients")
	loadtestCmd.Flags().IntVar(&requestsPerUser, "requests", 10, "Number of requests per client")
}

func runLoadTest() error {
	ltConfig := LoadTestConfig{
		BaseURL:         strings.TrimRight(baseURL, "/"),
		NumUsers:        numUsers,
		NumFilms:        numFilms,
		ConcurrentUsers: concurrentUsers,
		RequestsPerUser: requestsPerUser,
	}
	if err := ltConfig.Validate(); err != nil {
		return err
	}

	loadTester := NewLoadTester(ltConfig)
	if err := loadTester.Initialize(); err != nil {
		return err
	}

	loadTester.RunLoadTest()
	return nil
}
