// Package stats derives dashboard and statistics figures from a user's
// applications. Everything is recomputed from the inputs on every call.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

const (
	// TopN bounds the industry and company rankings.
	TopN = 5
	// HistogramMonths is the width of the monthly histogram.
	HistogramMonths = 6
	// RecentCount is the number of applications listed as recent activity.
	RecentCount = 6
	// NotSpecified labels applications whose company has no industry.
	NotSpecified = "Not Specified"
)

type StatusCount struct {
	Status     models.Status `json:"status"`
	Label      string        `json:"label"`
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MonthCount struct {
	Month      string  `json:"month"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Statistics is the full statistics view of one user's applications.
type Statistics struct {
	TotalApplications     int                         `json:"total_applications"`
	ApplicationsThisMonth int                         `json:"applications_this_month"`
	StatusCounts          []StatusCount               `json:"status_counts"`
	InterviewCount        int                         `json:"interview_count"`
	OfferCount            int                         `json:"offer_count"`
	RejectionCount        int                         `json:"rejection_count"`
	ResponseRate          float64                     `json:"response_rate"`
	InterviewRate         float64                     `json:"interview_rate"`
	OfferRate             float64                     `json:"offer_rate"`
	RejectionRate         float64                     `json:"rejection_rate"`
	TopIndustries         []NameCount                 `json:"top_industries"`
	TopCompanies          []NameCount                 `json:"top_companies"`
	Monthly               []MonthCount                `json:"monthly"`
	Recent                []models.ApplicationSummary `json:"recent"`
}

// Rate returns count/total as a percentage rounded to one decimal, or 0 when
// total is not positive. The result is clamped to [0,100].
func Rate(count, total int) float64 {
	if total <= 0 || count <= 0 {
		return 0
	}
	if count >= total {
		return 100
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// Compute aggregates apps as of now. apps must be ordered newest first for
// the Recent slice to be meaningful, which is how the repository lists them.
func Compute(apps []models.ApplicationSummary, now time.Time) Statistics {
	total := len(apps)
	st := Statistics{
		TotalApplications: total,
		StatusCounts:      make([]StatusCount, 0, len(models.Statuses)),
	}

	byStatus := make(map[models.Status]int, len(models.Statuses))
	for _, a := range apps {
		byStatus[a.Status]++
		if a.CreatedAt.Year() == now.Year() && a.CreatedAt.Month() == now.Month() {
			st.ApplicationsThisMonth++
		}
		if a.Status.IsInterview() {
			st.InterviewCount++
		}
	}

	for _, s := range models.Statuses {
		st.StatusCounts = append(st.StatusCounts, StatusCount{
			Status:     s,
			Label:      s.Label(),
			Count:      byStatus[s],
			Percentage: Rate(byStatus[s], total),
		})
	}

	st.OfferCount = byStatus[models.StatusOfferReceived]
	st.RejectionCount = byStatus[models.StatusRejected]
	st.ResponseRate = Rate(st.InterviewCount, total)
	st.InterviewRate = st.ResponseRate
	st.OfferRate = Rate(st.OfferCount, total)
	st.RejectionRate = Rate(st.RejectionCount, total)

	st.TopIndustries = topIndustries(apps)
	st.TopCompanies = topCompanies(apps)
	st.Monthly = Monthly(apps, now)

	n := min(RecentCount, total)
	st.Recent = append([]models.ApplicationSummary(nil), apps[:n]...)
	return st
}

func topIndustries(apps []models.ApplicationSummary) []NameCount {
	counts := map[string]int{}
	for _, a := range apps {
		name := a.Industry
		if name == "" {
			name = NotSpecified
		}
		counts[name]++
	}
	return rank(counts)
}

// topCompanies groups by company id; two companies sharing a name are
// ranked separately.
func topCompanies(apps []models.ApplicationSummary) []NameCount {
	type key struct{ id, name string }
	counts := map[key]int{}
	for _, a := range apps {
		counts[key{a.CompanyID, a.CompanyName}]++
	}
	out := make([]NameCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, NameCount{Name: k.name, Count: c})
	}
	return top(out)
}

func rank(counts map[string]int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, NameCount{Name: name, Count: c})
	}
	return top(out)
}

func top(out []NameCount) []NameCount {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}

// Monthly buckets applications created in the last HistogramMonths calendar
// months (current month included). Empty months are reported with a zero
// count. Percentages are relative to the largest bucket.
func Monthly(apps []models.ApplicationSummary, now time.Time) []MonthCount {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(HistogramMonths - 1), 0)

	buckets := make([]MonthCount, HistogramMonths)
	index := make(map[string]int, HistogramMonths)
	for i := range buckets {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		buckets[i] = MonthCount{Month: key, Label: m.Format("Jan")}
		index[key] = i
	}

	for _, a := range apps {
		if i, ok := index[a.CreatedAt.In(now.Location()).Format("2006-01")]; ok {
			buckets[i].Count++
		}
	}

	maxCount := 0
	for _, b := range buckets {
		maxCount = max(maxCount, b.Count)
	}
	for i := range buckets {
		buckets[i].Percentage = Rate(buckets[i].Count, maxCount)
	}
	return buckets
}

// Dashboard is the landing-page summary.
type Dashboard struct {
	TotalApplications     int                         `json:"total_applications"`
	PendingApplications   int                         `json:"pending_applications"`
	InterviewApplications int                         `json:"interview_applications"`
	RecentApplications    []models.ApplicationSummary `json:"recent_applications"`
	UpcomingInterviews    []models.UpcomingInterview  `json:"upcoming_interviews"`
}

// DashboardRecent is the number of recent applications on the dashboard.
const DashboardRecent = 5

// ComputeDashboard counts apps (newest first) and attaches upcoming rounds.
func ComputeDashboard(apps []models.ApplicationSummary, upcoming []models.UpcomingInterview) Dashboard {
	d := Dashboard{TotalApplications: len(apps), UpcomingInterviews: upcoming}
	for _, a := range apps {
		switch {
		case a.Status.IsPending():
			d.PendingApplications++
		case a.Status.IsInterview():
			d.InterviewApplications++
		}
	}
	n := min(DashboardRecent, len(apps))
	d.RecentApplications = append([]models.ApplicationSummary(nil), apps[:n]...)
	if d.UpcomingInterviews == nil {
		d.UpcomingInterviews = []models.UpcomingInterview{}
	}
	return d
}
