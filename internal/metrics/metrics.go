package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Simple Prometheus-style metrics for HTTP requests and unfurl outcomes.
// This is intentionally minimal and in-memory only.

var (
	mu             sync.RWMutex
	requestsTotal  = make(map[reqKey]int64)
	latencyMsSum   = make(map[latKey]int64)
	latencyMsCount = make(map[latKey]int64)

	unfurlsTotal     = make(map[string]int64)
	fetchFailures    = make(map[string]int64)
	cacheHitsTotal   int64
	cacheMissesTotal int64
)

type reqKey struct {
	Method string
	Path   string
	Status int
}

type latKey struct {
	Method string
	Path   string
}

// RecordRequest increments the request counter and records latency.
func RecordRequest(method, path string, status int, latencyMs int64) {
	mu.Lock()
	defer mu.Unlock()

	rk := reqKey{Method: method, Path: path, Status: status}
	requestsTotal[rk]++

	lk := latKey{Method: method, Path: path}
	latencyMsSum[lk] += latencyMs
	latencyMsCount[lk]++
}

// RecordUnfurl increments the per-outcome unfurl counter. Outcome is "ok" for
// a successful extraction or the fetch error kind for a failure.
func RecordUnfurl(outcome string) {
	mu.Lock()
	defer mu.Unlock()
	unfurlsTotal[outcome]++
}

// RecordFetchFailure counts fetch failures by classification code.
func RecordFetchFailure(kind string) {
	mu.Lock()
	defer mu.Unlock()
	fetchFailures[kind]++
}

// RecordCacheLookup counts preview cache hits and misses.
func RecordCacheLookup(hit bool) {
	mu.Lock()
	defer mu.Unlock()
	if hit {
		cacheHitsTotal++
	} else {
		cacheMissesTotal++
	}
}

// Export renders all counters in Prometheus text exposition format.
func Export() string {
	mu.RLock()
	defer mu.RUnlock()

	var b strings.Builder

	b.WriteString("# HELP unfurl_http_requests_total Total HTTP requests processed.\n")
	b.WriteString("# TYPE unfurl_http_requests_total counter\n")
	reqKeys := make([]reqKey, 0, len(requestsTotal))
	for k := range requestsTotal {
		reqKeys = append(reqKeys, k)
	}
	sort.Slice(reqKeys, func(i, j int) bool {
		if reqKeys[i].Method != reqKeys[j].Method {
			return reqKeys[i].Method < reqKeys[j].Method
		}
		if reqKeys[i].Path != reqKeys[j].Path {
			return reqKeys[i].Path < reqKeys[j].Path
		}
		return reqKeys[i].Status < reqKeys[j].Status
	})
	for _, k := range reqKeys {
		fmt.Fprintf(&b, "unfurl_http_requests_total{method=%q,path=%q,status=\"%d\"} %d\n",
			k.Method, k.Path, k.Status, requestsTotal[k])
	}

	b.WriteString("# HELP unfurl_http_request_duration_ms_sum Sum of request latencies in milliseconds.\n")
	b.WriteString("# TYPE unfurl_http_request_duration_ms_sum counter\n")
	latKeys := make([]latKey, 0, len(latencyMsSum))
	for k := range latencyMsSum {
		latKeys = append(latKeys, k)
	}
	sort.Slice(latKeys, func(i, j int) bool {
		if latKeys[i].Method != latKeys[j].Method {
			return latKeys[i].Method < latKeys[j].Method
		}
		return latKeys[i].Path < latKeys[j].Path
	})
	for _, k := range latKeys {
		fmt.Fprintf(&b, "unfurl_http_request_duration_ms_sum{method=%q,path=%q} %d\n",
			k.Method, k.Path, latencyMsSum[k])
	}
	b.WriteString("# HELP unfurl_http_request_duration_ms_count Count of requests measured for latency.\n")
	b.WriteString("# TYPE unfurl_http_request_duration_ms_count counter\n")
	for _, k := range latKeys {
		fmt.Fprintf(&b, "unfurl_http_request_duration_ms_count{method=%q,path=%q} %d\n",
			k.Method, k.Path, latencyMsCount[k])
	}

	b.WriteString("# HELP unfurl_requests_total Total unfurl operations by outcome.\n")
	b.WriteString("# TYPE unfurl_requests_total counter\n")
	outcomes := make([]string, 0, len(unfurlsTotal))
	for k := range unfurlsTotal {
		outcomes = append(outcomes, k)
	}
	sort.Strings(outcomes)
	for _, k := range outcomes {
		fmt.Fprintf(&b, "unfurl_requests_total{outcome=%q} %d\n", k, unfurlsTotal[k])
	}

	b.WriteString("# HELP unfurl_fetch_failures_total Fetch failures by classification.\n")
	b.WriteString("# TYPE unfurl_fetch_failures_total counter\n")
	kinds := make([]string, 0, len(fetchFailures))
	for k := range fetchFailures {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&b, "unfurl_fetch_failures_total{kind=%q} %d\n", k, fetchFailures[k])
	}

	b.WriteString("# HELP unfurl_cache_hits_total Preview cache hits.\n")
	b.WriteString("# TYPE unfurl_cache_hits_total counter\n")
	fmt.Fprintf(&b, "unfurl_cache_hits_total %d\n", cacheHitsTotal)
	b.WriteString("# HELP unfurl_cache_misses_total Preview cache misses.\n")
	b.WriteString("# TYPE unfurl_cache_misses_total counter\n")
	fmt.Fprintf(&b, "unfurl_cache_misses_total %d\n", cacheMissesTotal)

	return b.String()
}
