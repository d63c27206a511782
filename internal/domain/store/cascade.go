package store

// Family names a record collection. The value doubles as the relational
// table name and the snapshot file name.
type Family string

const (
	FamilyUser           Family = "users"
	FamilyTeam           Family = "teams"
	FamilyTeamMember     Family = "team_members"
	FamilyInvitation     Family = "invitations"
	FamilyAnnouncement   Family = "announcements"
	FamilySeason         Family = "seasons"
	FamilyClassification Family = "league_classifications"
	FamilyMatch          Family = "matches"
	FamilySubstitution   Family = "match_substitutions"
	FamilyGoal           Family = "match_goals"
	FamilyCard           Family = "match_cards"
	FamilyPhoto          Family = "match_photos"
	FamilyPlayerStat     Family = "player_stats"
	FamilyEvent          Family = "events"
	FamilyAttendance     Family = "event_attendance"
	FamilyTeamLineup     Family = "team_lineups"
	FamilyMatchLineup    Family = "match_lineups"
)

// Families lists every family in load order: parents before children.
func Families() []Family {
	return []Family{
		FamilyUser,
		FamilyTeam,
		FamilyTeamMember,
		FamilyInvitation,
		FamilyAnnouncement,
		FamilySeason,
		FamilyClassification,
		FamilyMatch,
		FamilySubstitution,
		FamilyGoal,
		FamilyCard,
		FamilyPhoto,
		FamilyPlayerStat,
		FamilyEvent,
		FamilyAttendance,
		FamilyTeamLineup,
		FamilyMatchLineup,
	}
}

type Action int

const (
	// ActionDelete removes the dependent rows, recursing into their own dependents.
	ActionDelete Action = iota
	// ActionNullify clears the foreign key and keeps the row.
	ActionNullify
	// ActionRestrict refuses the parent delete while dependents exist.
	ActionRestrict
)

func (a Action) String() string {
	switch a {
	case ActionNullify:
		return "SET NULL"
	case ActionRestrict:
		return "RESTRICT"
	default:
		return "CASCADE"
	}
}

// Dependent is one edge of the cascade plan.
type Dependent struct {
	Child      Family
	ForeignKey string
	Action     Action
}

// CascadePlan maps a parent family to its direct dependents in the order
// they are processed. The relational schema declares the same edges as
// foreign key actions.
var CascadePlan = map[Family][]Dependent{
	FamilyTeam: {
		{Child: FamilyTeamMember, ForeignKey: "team_id", Action: ActionDelete},
		{Child: FamilyMatch, ForeignKey: "team_id", Action: ActionDelete},
		{Child: FamilyEvent, ForeignKey: "team_id", Action: ActionDelete},
		{Child: FamilyAnnouncement, ForeignKey: "team_id", Action: ActionDelete},
		{Child: FamilyClassification, ForeignKey: "team_id", Action: ActionDelete},
		{Child: FamilySeason, ForeignKey: "team_id", Action: ActionDelete},
		{Child: FamilyInvitation, ForeignKey: "team_id", Action: ActionDelete},
		{Child: FamilyTeamLineup, ForeignKey: "team_id", Action: ActionDelete},
	},
	FamilyMatch: {
		{Child: FamilyMatchLineup, ForeignKey: "match_id", Action: ActionDelete},
		{Child: FamilySubstitution, ForeignKey: "match_id", Action: ActionDelete},
		{Child: FamilyGoal, ForeignKey: "match_id", Action: ActionDelete},
		{Child: FamilyCard, ForeignKey: "match_id", Action: ActionDelete},
		{Child: FamilyPhoto, ForeignKey: "match_id", Action: ActionDelete},
		{Child: FamilyPlayerStat, ForeignKey: "match_id", Action: ActionDelete},
	},
	FamilyEvent: {
		{Child: FamilyAttendance, ForeignKey: "event_id", Action: ActionDelete},
	},
	FamilyTeamMember: {
		{Child: FamilyPlayerStat, ForeignKey: "team_member_id", Action: ActionDelete},
		{Child: FamilyCard, ForeignKey: "team_member_id", Action: ActionDelete},
		{Child: FamilySubstitution, ForeignKey: "player_in_id", Action: ActionDelete},
		{Child: FamilySubstitution, ForeignKey: "player_out_id", Action: ActionDelete},
		{Child: FamilyGoal, ForeignKey: "scorer_id", Action: ActionNullify},
		{Child: FamilyGoal, ForeignKey: "assist_id", Action: ActionNullify},
	},
	FamilyUser: {
		{Child: FamilyTeamMember, ForeignKey: "user_id", Action: ActionDelete},
		{Child: FamilyAttendance, ForeignKey: "user_id", Action: ActionDelete},
		{Child: FamilyTeam, ForeignKey: "created_by", Action: ActionNullify},
		{Child: FamilyEvent, ForeignKey: "created_by", Action: ActionNullify},
		{Child: FamilyAnnouncement, ForeignKey: "author_id", Action: ActionNullify},
		{Child: FamilyInvitation, ForeignKey: "invited_by", Action: ActionNullify},
		{Child: FamilyPhoto, ForeignKey: "uploaded_by", Action: ActionNullify},
	},
	FamilySeason: {
		{Child: FamilyClassification, ForeignKey: "season_id", Action: ActionRestrict},
		{Child: FamilyMatch, ForeignKey: "season_id", Action: ActionNullify},
	},
}

// CascadeFor returns the direct dependents of parent, in processing order.
func CascadeFor(parent Family) []Dependent {
	deps := CascadePlan[parent]
	out := make([]Dependent, len(deps))
	copy(out, deps)
	return out
}

// Reference is a foreign key seen from the child side.
type Reference struct {
	ForeignKey string
	Parent     Family
	Action     Action
}

// ReferencesOf inverts the plan: every parent that child points at.
func ReferencesOf(child Family) []Reference {
	var out []Reference
	for _, parent := range Families() {
		for _, dep := range CascadePlan[parent] {
			if dep.Child == child {
				out = append(out, Reference{ForeignKey: dep.ForeignKey, Parent: parent, Action: dep.Action})
			}
		}
	}
	return out
}
