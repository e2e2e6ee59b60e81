package apierrors

const (
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidStepPayload = "invalidStepPayload"
	MsgStepOutOfRange     = "stepOutOfRange"
	MsgTaskNotFound       = "taskNotFound"
	MsgChecklistNotFound  = "checklistNotFound"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailListTasks      = "failListTasks"
	MsgFailFetchTask      = "failFetchTask"
	MsgFailToggleStep     = "failToggleStep"
	MsgFailDeleteTask     = "failDeleteTask"
)
