package domain

const (
	ReminderTitle = "Activity time!"
	ReminderBody  = "You have a new activity to do today. Let's go?"
)

type ReminderDecision string

const (
	DecisionOutsideWindow    ReminderDecision = "outside_window"
	DecisionAlreadyDone      ReminderDecision = "already_done"
	DecisionAlreadyNotified  ReminderDecision = "already_notified"
	DecisionPermissionDenied ReminderDecision = "permission_denied"
	DecisionNotified         ReminderDecision = "notified"
	DecisionNotifyFailed     ReminderDecision = "notify_failed"
	DecisionLogUnavailable   ReminderDecision = "log_unavailable"
)
