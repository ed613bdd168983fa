package entities

// SaveState is the editor session's persistence state.
//
// Transitions are driven only by edits (-> Dirty) and confirmed saves
// (-> Clean). Clean holds exactly when the current fingerprint equals the
// last-saved fingerprint.

type SaveState string

const (
	SaveStateClean       SaveState = "clean"
	SaveStateDirty       SaveState = "dirty"
	SaveStateSavePending SaveState = "save_pending"
	SaveStateSaving      SaveState = "saving"
)

// Badge is the user-visible label for the persistent saved/unsaved indicator.
func (s SaveState) Badge() string {
	if s == SaveStateClean {
		return "All changes saved"
	}
	return "Unsaved changes"
}

// NavigationKind classifies how the user is trying to leave the editor.

type NavigationKind string

const (
	NavigationKindLink   NavigationKind = "link"
	NavigationKindBack   NavigationKind = "back"
	NavigationKindReload NavigationKind = "reload"
	NavigationKindClose  NavigationKind = "close"
)

// NavigationIntent is a transient attempt to leave the editing context. It is
// created when the client reports a navigation event and is resolved to
// proceed or cancel before the underlying action is allowed to complete.
//
// Link intents carry the anchor's resolved target plus the attributes the
// guard needs to classify it; the other kinds carry no target.
type NavigationIntent struct {
	Kind NavigationKind `json:"kind"`

	Target       string `json:"target,omitempty"`
	TargetAttr   string `json:"target_attr,omitempty"`
	HasDownload  bool   `json:"has_download,omitempty"`
	CurrentRoute string `json:"current_route,omitempty"`
}

// Decision is the user's answer to the three-way leave prompt.

type Decision string

const (
	DecisionConfirm Decision = "confirm" // save and leave
	DecisionDiscard Decision = "discard" // leave without saving
	DecisionCancel  Decision = "cancel"  // stay
)

// ConfirmPrompt is the payload handed to the confirmation dialog service.
type ConfirmPrompt struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	ConfirmText string `json:"confirm_text"`
	CancelText  string `json:"cancel_text"`
	ShowDiscard bool   `json:"show_discard"`
	DiscardText string `json:"discard_text"`
}

// NavigationAction tells the client how to complete a resolved intent.

type NavigationAction string

const (
	// ActionProceed: perform the originally intended navigation.
	ActionProceed NavigationAction = "proceed"
	// ActionRepush: re-push the synthetic history entry to neutralize a back
	// navigation while the decision is pending.
	ActionRepush NavigationAction = "repush"
	// ActionBack: perform a real history.back; the guard will not intercept
	// this one.
	ActionBack NavigationAction = "back"
	// ActionReload: force a full reload.
	ActionReload NavigationAction = "reload"
	// ActionNativePrompt: fall back to the browser's own leave-site prompt.
	// Tab close and OS-chrome reloads cannot present the custom dialog.
	ActionNativePrompt NavigationAction = "native_prompt"
	// ActionStay: nothing to do, the user stays in the editor.
	ActionStay NavigationAction = "stay"
)

// Resolution is the outcome of a navigation intent.
type Resolution struct {
	Proceed bool             `json:"proceed"`
	Saved   bool             `json:"saved"`
	Action  NavigationAction `json:"action"`
}
