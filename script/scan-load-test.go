package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// pair is one (user, code) combination that may be credited at most once
type pair struct {
	UserID uint64
	CodeID uint64
	Points int64
}

// TestResult contains metrics for a single game completion request
type TestResult struct {
	Pair         pair
	StatusCode   int
	ResponseTime time.Duration
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests  int
	Credited       int
	Conflicts      int
	OtherFailures  int
	TotalTime      time.Duration
	ResponseTimes  []time.Duration
	CreditsPerPair map[pair]int
	ErrorCounts    map[string]int
	Lock           sync.Mutex
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func main() {
	concurrency := flag.Int("c", 10, "Number of concurrent goroutines")
	users := flag.Int("users", 5, "Number of users to create")
	codes := flag.Int("codes", 5, "Number of codes to create")
	repeats := flag.Int("r", 4, "Completions sent for every (user, code) pair")
	baseURL := flag.String("url", "http://localhost:8000", "Base URL for the API")
	flag.Parse()

	client := &apiClient{
		baseURL: *baseURL,
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	pairs, userIDs, err := setup(client, *users, *codes)
	if err != nil {
		fmt.Printf("Setup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Load testing game completion: %d users x %d codes, %d completions per pair\n", *users, *codes, *repeats)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)

	jobs := make(chan pair, len(pairs)*(*repeats))
	for r := 0; r < *repeats; r++ {
		for _, p := range pairs {
			jobs <- p
		}
	}
	close(jobs)

	stats := &TestStats{
		TotalRequests:  len(pairs) * (*repeats),
		CreditsPerPair: make(map[pair]int),
		ErrorCounts:    make(map[string]int),
	}

	results := make(chan TestResult, stats.TotalRequests)
	var wg sync.WaitGroup
	startTime := time.Now()
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, jobs, results)
		}()
	}
	wg.Wait()
	close(results)
	stats.TotalTime = time.Since(startTime)

	for result := range results {
		stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
		switch {
		case result.Error != nil:
			stats.OtherFailures++
			stats.ErrorCounts[result.Error.Error()]++
		case result.StatusCode == http.StatusOK:
			stats.Credited++
			stats.CreditsPerPair[result.Pair]++
		case result.StatusCode == http.StatusConflict:
			stats.Conflicts++
		default:
			stats.OtherFailures++
			stats.ErrorCounts[fmt.Sprintf("HTTP status code %d", result.StatusCode)]++
		}
	}

	ok := printResults(stats, pairs)
	if !verifyTotals(client, userIDs, pairs, stats) {
		ok = false
	}
	if !ok {
		os.Exit(1)
	}
}

// setup creates one brand with the requested codes and users through the API
func setup(client *apiClient, userCount, codeCount int) ([]pair, []uint64, error) {
	var brand struct {
		ID uint64 `json:"id"`
	}
	if err := client.post("/brands", map[string]any{"name": "Load Test " + uuid.NewString()[:8]}, &brand); err != nil {
		return nil, nil, fmt.Errorf("create brand: %w", err)
	}

	type code struct {
		ID          uint64 `json:"id"`
		PointsValue int64  `json:"pointsValue"`
	}
	createdCodes := make([]code, 0, codeCount)
	for i := 0; i < codeCount; i++ {
		var c code
		points := int64(10 * (i + 1))
		if err := client.post("/codes", map[string]any{"brandId": brand.ID, "pointsValue": points}, &c); err != nil {
			return nil, nil, fmt.Errorf("create code: %w", err)
		}
		createdCodes = append(createdCodes, c)
	}

	userIDs := make([]uint64, 0, userCount)
	for i := 0; i < userCount; i++ {
		var u struct {
			ID uint64 `json:"id"`
		}
		name := "load-" + uuid.NewString()
		if err := client.post("/users", map[string]any{"username": name, "email": name + "@example.com"}, &u); err != nil {
			return nil, nil, fmt.Errorf("create user: %w", err)
		}
		userIDs = append(userIDs, u.ID)
	}

	pairs := make([]pair, 0, userCount*codeCount)
	for _, userID := range userIDs {
		for _, c := range createdCodes {
			pairs = append(pairs, pair{UserID: userID, CodeID: c.ID, Points: c.PointsValue})
		}
	}
	return pairs, userIDs, nil
}

func worker(client *apiClient, jobs <-chan pair, results chan<- TestResult) {
	for p := range jobs {
		body, err := json.Marshal(map[string]any{"userId": p.UserID, "codeId": p.CodeID})
		if err != nil {
			results <- TestResult{Pair: p, Error: err}
			continue
		}

		start := time.Now()
		resp, err := client.http.Post(client.baseURL+"/game/play", "application/json", bytes.NewReader(body))
		result := TestResult{Pair: p, ResponseTime: time.Since(start), Error: err}
		if err == nil {
			result.StatusCode = resp.StatusCode
			resp.Body.Close()
		}
		results <- result
	}
}

// verifyTotals checks every user's total against the credited pairs
func verifyTotals(client *apiClient, userIDs []uint64, pairs []pair, stats *TestStats) bool {
	expected := make(map[uint64]int64, len(userIDs))
	for _, p := range pairs {
		if stats.CreditsPerPair[p] > 0 {
			expected[p.UserID] += p.Points
		}
	}

	ok := true
	fmt.Println("\n----------------- USER TOTALS -----------------")
	for _, userID := range userIDs {
		var u struct {
			TotalPoints int64 `json:"totalPoints"`
		}
		if err := client.get(fmt.Sprintf("/users/%d", userID), &u); err != nil {
			fmt.Printf("User %d: lookup failed: %v\n", userID, err)
			ok = false
			continue
		}
		mark := "ok"
		if u.TotalPoints != expected[userID] {
			mark = "MISMATCH"
			ok = false
		}
		fmt.Printf("User %d: total %d, expected %d [%s]\n", userID, u.TotalPoints, expected[userID], mark)
	}
	return ok
}

func printResults(stats *TestStats, pairs []pair) bool {
	slices.Sort(stats.ResponseTimes)
	var avg, p50, p95, p99 time.Duration
	if n := len(stats.ResponseTimes); n > 0 {
		var total time.Duration
		for _, d := range stats.ResponseTimes {
			total += d
		}
		avg = total / time.Duration(n)
		p50 = stats.ResponseTimes[n*50/100]
		p95 = stats.ResponseTimes[n*95/100]
		p99 = stats.ResponseTimes[n*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:   %d\n", stats.TotalRequests)
	fmt.Printf("Credited (200):   %d\n", stats.Credited)
	fmt.Printf("Conflicts (409):  %d\n", stats.Conflicts)
	fmt.Printf("Other Failures:   %d\n", stats.OtherFailures)
	fmt.Printf("Total Test Time:  %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:       %.2f req/s\n", float64(stats.TotalRequests)/stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response: %v\n", avg)
	fmt.Printf("P50 Response:     %v\n", p50)
	fmt.Printf("P95 Response:     %v\n", p95)
	fmt.Printf("P99 Response:     %v\n", p99)

	if len(stats.ErrorCounts) > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", errMsg, count)
		}
	}

	ok := stats.OtherFailures == 0
	for _, p := range pairs {
		if stats.CreditsPerPair[p] != 1 {
			fmt.Printf("Pair user=%d code=%d credited %d times\n", p.UserID, p.CodeID, stats.CreditsPerPair[p])
			ok = false
		}
	}

	fmt.Println("\n================= CONCLUSION =================")
	if ok {
		fmt.Println("Every pair was credited exactly once")
	} else {
		fmt.Println("Crediting contract violated, see above")
	}
	return ok
}

func (c *apiClient) post(path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s: HTTP status code %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) get(path string, out any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: HTTP status code %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
