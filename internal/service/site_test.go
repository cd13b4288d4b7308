package service

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeSite serves profile and rankings pages shaped like the live site.
type fakeSite struct {
	*httptest.Server

	mu        sync.Mutex
	profiles  map[string]string // lowercased identifier -> json-user payload
	rankings  map[int][]string
	failUsers map[string]int // identifier -> status to answer with
	delay     func(identifier string) time.Duration

	profileHits atomic.Int64
	pageHits    sync.Map // page number -> *atomic.Int64
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()
	site := &fakeSite{
		profiles:  make(map[string]string),
		rankings:  make(map[int][]string),
		failUsers: make(map[string]int),
	}
	site.Server = httptest.NewServer(http.HandlerFunc(site.handle))
	t.Cleanup(site.Close)
	return site
}

func playerPayload(username string, id, rank int) string {
	return fmt.Sprintf(`{"id":%d,"username":%q,"country":{"code":"KR","name":"South Korea"},`+
		`"statistics":{"pp":%d.5,"play_count":%d,"rank":{"global":%d,"country":%d}}}`,
		id, username, 20000-rank, 1000+id, rank, rank)
}

func (s *fakeSite) addPlayer(username string, id, rank int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload := playerPayload(username, id, rank)
	s.profiles[strings.ToLower(username)] = payload
	s.profiles[strconv.Itoa(id)] = payload
}

func (s *fakeSite) setRankings(page int, usernames ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rankings[page] = usernames
}

func (s *fakeSite) failUser(identifier string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUsers[strings.ToLower(identifier)] = status
}

func (s *fakeSite) pageRequests(page int) int64 {
	counter, ok := s.pageHits.Load(page)
	if !ok {
		return 0
	}
	return counter.(*atomic.Int64).Load()
}

func (s *fakeSite) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/u/"):
		s.serveProfile(w, strings.ToLower(strings.TrimPrefix(r.URL.Path, "/u/")))
	case r.URL.Path == "/rankings/osu/performance":
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		counter, _ := s.pageHits.LoadOrStore(page, new(atomic.Int64))
		counter.(*atomic.Int64).Add(1)
		s.serveRankings(w, page)
	default:
		http.NotFound(w, r)
	}
}

func (s *fakeSite) serveProfile(w http.ResponseWriter, identifier string) {
	s.profileHits.Add(1)
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.maxInFlight.Load()
		if current <= peak || s.maxInFlight.CompareAndSwap(peak, current) {
			break
		}
	}

	s.mu.Lock()
	payload, ok := s.profiles[identifier]
	status, failing := s.failUsers[identifier]
	delay := s.delay
	s.mu.Unlock()

	if delay != nil {
		time.Sleep(delay(identifier))
	}
	if failing {
		w.WriteHeader(status)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	fmt.Fprintf(w, `<!DOCTYPE html><html><head><title>%s · player info | osu!</title></head><body>
<div class="js-react--profile-page osu-layout osu-layout--full"></div>
<script id="json-user" type="application/json">
    %s
</script>
</body></html>`, html.EscapeString(identifier), payload)
}

func (s *fakeSite) serveRankings(w http.ResponseWriter, page int) {
	s.mu.Lock()
	usernames := s.rankings[page]
	s.mu.Unlock()

	var rows strings.Builder
	for _, name := range usernames {
		fmt.Fprintf(&rows, `<tr class="ranking-page-table__row"><td class="ranking-page-table__column">
<div class="ranking-page-table__user-link"><a href="/users/1" class="ranking-page-table__user-link-text js-usercard" data-user-id="1">
    %s
</a></div></td></tr>
`, html.EscapeString(name))
	}
	fmt.Fprintf(w, `<!DOCTYPE html><html><body><table class="ranking-page-table"><tbody>
%s</tbody></table></body></html>`, rows.String())
}
