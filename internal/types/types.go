// Package types defines the domain model shared across CollabFlow:
// collaboration requests, reply templates, the email identity config and the
// export date range. Serialized field names match the persisted slot format,
// so changing a tag is a storage migration.
package types

// Status tracks where a collaboration request sits in the triage flow.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted" // reserved: no in-app operation sets this yet
	StatusDeclined Status = "declined" // reserved: no in-app operation sets this yet
	StatusReplied  Status = "replied"
)

// CollaborationRequest is one inbound brand-collaboration inquiry.
// ID is assigned at creation and never changes. Selection state is
// deliberately not part of the record; it lives in store.Selection.
type CollaborationRequest struct {
	ID          string `json:"id"`
	BrandName   string `json:"brandName"`
	Email       string `json:"email"`
	RequestDate string `json:"requestDate"` // YYYY-MM-DD
	Summary     string `json:"summary"`
	Budget      string `json:"budget,omitempty"`
	Status      Status `json:"status"`
}

// TemplateID is a closed enumeration: exactly one accept and one decline
// template exist at all times.
type TemplateID string

const (
	TemplateYes TemplateID = "yes"
	TemplateNo  TemplateID = "no"
)

// ReplyTemplate is one of the two fixed-identity reply templates.
// Subject and Body may contain the literal placeholder {brandName}.
type ReplyTemplate struct {
	ID      TemplateID `json:"id"`
	Name    string     `json:"name"`
	Subject string     `json:"subject"`
	Body    string     `json:"body"`
}

// EmailConfig is the user's self-identification. AuthCode is stored as given
// and never used to authenticate anywhere; Email is passed to the extraction
// gateway so the user's own outgoing mail is not misread as an inbound offer.
type EmailConfig struct {
	Email    string `json:"email"`
	AuthCode string `json:"authCode"`
	Enabled  bool   `json:"enabled"`
}

// DateRange bounds the export projection. Both fields empty means "no range
// selected yet", which blocks export rather than exporting everything.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Defaults applied when the extraction gateway leaves a field empty.
const (
	DefaultBrandName = "未知品牌"
	DefaultSummary   = "无详细内容"
)

// DefaultTemplates returns the built-in template content the store seeds on
// first run and restores on reset. Callers get a fresh slice each time so
// edits never leak into the defaults.
func DefaultTemplates() []ReplyTemplate {
	return []ReplyTemplate{
		{
			ID:      TemplateYes,
			Name:    "接受合作 (Yes)",
			Subject: "回复：关于 {brandName} 的合作意向确认",
			Body: "您好，\n\n感谢贵品牌 {brandName} 的盛情邀请。我是博主本人。\n\n" +
				"如果你是品牌方，我非常荣幸能有机会与贵品牌合作。我已经详细阅读了您的合作需求，觉得非常契合我的账号风格。\n\n" +
				"请问是否有详细的Brief或产品资料可以进一步同步？期待进一步沟通。\n\n祝好，\n[您的名字]",
		},
		{
			ID:      TemplateNo,
			Name:    "婉拒合作 (No)",
			Subject: "回复：关于 {brandName} 的合作邀约",
			Body: "您好，\n\n非常感谢 {brandName} 的关注与认可。\n\n" +
				"经过慎重考虑，由于近期档期已满/内容规划原因，暂时无法承接此次合作。希望未来由于合适的机会能再续前缘。\n\n" +
				"祝新品大卖！\n\n祝好，\n[您的名字]",
		},
	}
}

// DefaultTemplate returns the built-in content for a single template id,
// falling back to the accept template for unknown ids.
func DefaultTemplate(id TemplateID) ReplyTemplate {
	for _, t := range DefaultTemplates() {
		if t.ID == id {
			return t
		}
	}
	return DefaultTemplates()[0]
}
