package models

// EmailType classifies a UserEmail alias.
type EmailType string

const (
	EmailPersonal     EmailType = "PERSONAL"
	EmailProfessional EmailType = "PROFESSIONAL"
	EmailAcademic     EmailType = "ACADEMIC"
	EmailOther        EmailType = "OTHER"
)

var emailTypeLabels = map[EmailType]string{
	EmailPersonal:     "Personal",
	EmailProfessional: "Professional",
	EmailAcademic:     "Academic",
	EmailOther:        "Other",
}

func (t EmailType) Valid() bool   { _, ok := emailTypeLabels[t]; return ok }
func (t EmailType) Label() string { return labelOr(emailTypeLabels, t) }

// EmploymentType of a JobPosition.
type EmploymentType string

const (
	FullTime   EmploymentType = "FULL_TIME"
	PartTime   EmploymentType = "PART_TIME"
	Contract   EmploymentType = "CONTRACT"
	Freelance  EmploymentType = "FREELANCE"
	Internship EmploymentType = "INTERNSHIP"
)

var employmentTypeLabels = map[EmploymentType]string{
	FullTime:   "Full Time",
	PartTime:   "Part Time",
	Contract:   "Contract",
	Freelance:  "Freelance",
	Internship: "Internship",
}

func (t EmploymentType) Valid() bool   { _, ok := employmentTypeLabels[t]; return ok }
func (t EmploymentType) Label() string { return labelOr(employmentTypeLabels, t) }

// DocumentType of an uploaded Document.
type DocumentType string

const (
	DocResume      DocumentType = "RESUME"
	DocCoverLetter DocumentType = "COVER_LETTER"
	DocPortfolio   DocumentType = "PORTFOLIO"
	DocOther       DocumentType = "OTHER"
)

var documentTypeLabels = map[DocumentType]string{
	DocResume:      "Resume",
	DocCoverLetter: "Cover Letter",
	DocPortfolio:   "Portfolio",
	DocOther:       "Other",
}

func (t DocumentType) Valid() bool   { _, ok := documentTypeLabels[t]; return ok }
func (t DocumentType) Label() string { return labelOr(documentTypeLabels, t) }

// Status of a JobApplication. Any status may be set to any other; the only
// automatic transition is DRAFT -> APPLIED on a successful send.
type Status string

const (
	StatusDraft              Status = "DRAFT"
	StatusApplied            Status = "APPLIED"
	StatusPhoneScreen        Status = "PHONE_SCREEN"
	StatusTechnicalInterview Status = "TECHNICAL_INTERVIEW"
	StatusOnsiteInterview    Status = "ONSITE_INTERVIEW"
	StatusFinalInterview     Status = "FINAL_INTERVIEW"
	StatusOfferReceived      Status = "OFFER_RECEIVED"
	StatusAccepted           Status = "ACCEPTED"
	StatusRejected           Status = "REJECTED"
	StatusWithdrawn          Status = "WITHDRAWN"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{
	StatusDraft, StatusApplied, StatusPhoneScreen, StatusTechnicalInterview,
	StatusOnsiteInterview, StatusFinalInterview, StatusOfferReceived,
	StatusAccepted, StatusRejected, StatusWithdrawn,
}

var statusLabels = map[Status]string{
	StatusDraft:              "Draft",
	StatusApplied:            "Applied",
	StatusPhoneScreen:        "Phone Screen",
	StatusTechnicalInterview: "Technical Interview",
	StatusOnsiteInterview:    "Onsite Interview",
	StatusFinalInterview:     "Final Interview",
	StatusOfferReceived:      "Offer Received",
	StatusAccepted:           "Accepted",
	StatusRejected:           "Rejected",
	StatusWithdrawn:          "Withdrawn",
}

func (s Status) Valid() bool   { _, ok := statusLabels[s]; return ok }
func (s Status) Label() string { return labelOr(statusLabels, s) }

// InterviewStatuses are the four pipeline stages counted as "in interview".
var InterviewStatuses = []Status{
	StatusPhoneScreen, StatusTechnicalInterview, StatusOnsiteInterview, StatusFinalInterview,
}

// ClosedStatuses are terminal; deadline reminders skip them.
var ClosedStatuses = []Status{StatusAccepted, StatusRejected, StatusWithdrawn}

func (s Status) IsInterview() bool { return containsStatus(InterviewStatuses, s) }
func (s Status) IsClosed() bool    { return containsStatus(ClosedStatuses, s) }
func (s Status) IsPending() bool   { return s == StatusDraft || s == StatusApplied }

// Priority of a JobApplication.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

var priorityLabels = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

func (p Priority) Valid() bool   { _, ok := priorityLabels[p]; return ok }
func (p Priority) Label() string { return labelOr(priorityLabels, p) }

// Platform the application was submitted through. Empty means unknown.
type Platform string

const (
	PlatformLinkedIn       Platform = "LINKEDIN"
	PlatformIndeed         Platform = "INDEED"
	PlatformGlassdoor      Platform = "GLASSDOOR"
	PlatformCompanyWebsite Platform = "COMPANY_WEBSITE"
	PlatformJobBoard       Platform = "JOBBOARD"
	PlatformRecruiter      Platform = "RECRUITER"
	PlatformReferral       Platform = "REFERRAL"
	PlatformCareerFair     Platform = "CAREER_FAIR"
	PlatformDirectEmail    Platform = "DIRECT_EMAIL"
	PlatformOther          Platform = "OTHER"
)

var platformLabels = map[Platform]string{
	PlatformLinkedIn:       "LinkedIn",
	PlatformIndeed:         "Indeed",
	PlatformGlassdoor:      "Glassdoor",
	PlatformCompanyWebsite: "Company Website",
	PlatformJobBoard:       "Job Board",
	PlatformRecruiter:      "Recruiter Contact",
	PlatformReferral:       "Employee Referral",
	PlatformCareerFair:     "Career Fair",
	PlatformDirectEmail:    "Direct Email",
	PlatformOther:          "Other",
}

func (p Platform) Valid() bool {
	if p == "" {
		return true
	}
	_, ok := platformLabels[p]
	return ok
}
func (p Platform) Label() string { return labelOr(platformLabels, p) }

// InterviewType of an InterviewRound.
type InterviewType string

const (
	InterviewPhone        InterviewType = "PHONE"
	InterviewVideo        InterviewType = "VIDEO"
	InterviewTechnical    InterviewType = "TECHNICAL"
	InterviewBehavioral   InterviewType = "BEHAVIORAL"
	InterviewOnsite       InterviewType = "ONSITE"
	InterviewPanel        InterviewType = "PANEL"
	InterviewPresentation InterviewType = "PRESENTATION"
	InterviewOther        InterviewType = "OTHER"
)

var interviewTypeLabels = map[InterviewType]string{
	InterviewPhone:        "Phone Screen",
	InterviewVideo:        "Video Call",
	InterviewTechnical:    "Technical Interview",
	InterviewBehavioral:   "Behavioral Interview",
	InterviewOnsite:       "Onsite Interview",
	InterviewPanel:        "Panel Interview",
	InterviewPresentation: "Presentation",
	InterviewOther:        "Other",
}

func (t InterviewType) Valid() bool   { _, ok := interviewTypeLabels[t]; return ok }
func (t InterviewType) Label() string { return labelOr(interviewTypeLabels, t) }

// InterviewStatus of an InterviewRound.
type InterviewStatus string

const (
	RoundScheduled   InterviewStatus = "SCHEDULED"
	RoundCompleted   InterviewStatus = "COMPLETED"
	RoundCancelled   InterviewStatus = "CANCELLED"
	RoundRescheduled InterviewStatus = "RESCHEDULED"
)

var interviewStatusLabels = map[InterviewStatus]string{
	RoundScheduled:   "Scheduled",
	RoundCompleted:   "Completed",
	RoundCancelled:   "Cancelled",
	RoundRescheduled: "Rescheduled",
}

func (s InterviewStatus) Valid() bool   { _, ok := interviewStatusLabels[s]; return ok }
func (s InterviewStatus) Label() string { return labelOr(interviewStatusLabels, s) }

func labelOr[K ~string](m map[K]string, k K) string {
	if l, ok := m[k]; ok {
		return l
	}
	return string(k)
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
