package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ClaimResponse mirrors the API's mining claim payload
type ClaimResponse struct {
	UserID string  `json:"userId"`
	Reward float64 `json:"reward"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	Reward       float64
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	NonZeroRewards     int
	TotalRewarded      float64
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ErrorCounts        map[string]int
	UserStats          map[string]int
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

// Scenario is one endpoint the storm can hit
type Scenario struct {
	Name string
	Path string // relative, %s is the user id
	Body string // empty for no payload
}

var scenarios = []Scenario{
	{"Claim", "/user/%s/mining/claim", ""},
	{"Start", "/user/%s/mining/start", ""},
	{"Balance", "/user/%s/balance", ""},
	{"Daily", "/user/%s/bonus/daily", ""},
	{"Watch", "/user/%s/bonus/watch", `{"adCompleted":true}`},
}

func main() {
	concurrency := flag.Int("c", 10, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 500, "Total number of requests to make")
	userIDsStr := flag.String("u", "", "Comma-separated list of user ids to storm (required)")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 20, "Delay between requests in milliseconds")
	claimsOnly := flag.Bool("claims-only", false, "Hammer only the mining claim endpoint")
	flag.Parse()

	var userIDs []string
	for _, id := range strings.Split(*userIDsStr, ",") {
		if id = strings.TrimSpace(id); id != "" {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) == 0 {
		fmt.Println("No user ids given; pass -u with ids of provisioned accounts")
		return
	}

	active := scenarios
	if *claimsOnly {
		active = scenarios[:1]
	}

	fmt.Printf("Storming %d users: %v\n", len(userIDs), userIDs)
	fmt.Printf("Scenarios: %d, concurrency: %d, total requests: %d, delay: %dms\n",
		len(active), *concurrency, *totalRequests, *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		UserStats:       make(map[string]int),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			worker(*baseURL, *delayMs, userIDs, active, jobs, results, stats)
		}(i)
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	done := make(chan struct{})
	go func() {
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
				if result.Reward > 0 {
					stats.NonZeroRewards++
					stats.TotalRewarded += result.Reward
				}
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.TotalResponseTime += result.ResponseTime
			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
		close(done)
	}()

	startTime := time.Now()
	wg.Wait()
	close(results)
	<-done
	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

func worker(baseURL string, delayMs int, userIDs []string,
	active []Scenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	client := &http.Client{Timeout: 10 * time.Second}

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		userID := userIDs[rand.Intn(len(userIDs))]
		scenario := active[rand.Intn(len(active))]

		stats.Lock.Lock()
		stats.UserStats[userID]++
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		apiURL := baseURL + fmt.Sprintf(scenario.Path, userID)

		var req *http.Request
		var err error
		if scenario.Name == "Balance" {
			req, err = http.NewRequest("GET", apiURL, nil)
		} else {
			req, err = http.NewRequest("POST", apiURL, bytes.NewBufferString(scenario.Body))
			if err == nil && scenario.Body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
		}
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}

		startTime := time.Now()
		resp, err := client.Do(req)
		responseTime := time.Since(startTime)

		result := TestResult{ResponseTime: responseTime}
		if err != nil {
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			// Cooldowns and already-active rejections are expected traffic
			result.Success = resp.StatusCode < 500

			if scenario.Name == "Claim" && resp.StatusCode == http.StatusOK {
				var claim ClaimResponse
				if decodeErr := json.NewDecoder(resp.Body).Decode(&claim); decodeErr == nil {
					result.Reward = claim.Reward
				}
			}
			if !result.Success {
				result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
			}
			resp.Body.Close()
		}

		results <- result
	}
}

func printResults(stats *TestStats) {
	fmt.Println("\n=== Results ===")
	fmt.Printf("Total time: %v\n", stats.TotalTime)
	fmt.Printf("Successful: %d, failed: %d\n", stats.SuccessfulRequests, stats.FailedRequests)
	fmt.Printf("Claims with nonzero reward: %d (total rewarded: %.9f)\n",
		stats.NonZeroRewards, stats.TotalRewarded)

	completed := stats.SuccessfulRequests + stats.FailedRequests
	if completed > 0 {
		fmt.Printf("Avg response time: %v\n", stats.TotalResponseTime/time.Duration(completed))
		fmt.Printf("Min/Max response time: %v / %v\n", stats.MinResponseTime, stats.MaxResponseTime)
		fmt.Printf("Requests/sec: %.1f\n", float64(completed)/stats.TotalTime.Seconds())
	}

	fmt.Println("\nPer user:")
	for id, n := range stats.UserStats {
		fmt.Printf("  %s: %d\n", id, n)
	}
	fmt.Println("Per scenario:")
	for name, n := range stats.ScenarioStats {
		fmt.Printf("  %s: %d\n", name, n)
	}
	if len(stats.ErrorCounts) > 0 {
		fmt.Println("Errors:")
		for msg, n := range stats.ErrorCounts {
			fmt.Printf("  %s: %d\n", msg, n)
		}
	}
}
