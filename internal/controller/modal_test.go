package controller

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenCloseModal(t *testing.T) {
	s := OpenModal(NewState(), ModalHelp)
	require.True(t, IsActive(s, ModalHelp))
	require.Equal(t, ModalHelp, TopModal(s))

	s = CloseModal(s, ModalHelp)
	require.False(t, IsActive(s, ModalHelp))
	require.Equal(t, ModalID(""), TopModal(s))
}

func TestCloseModal_WithoutOwnerIsNoop(t *testing.T) {
	s := OpenModal(NewState(), ModalPrompt)
	require.Equal(t, s, CloseModal(s, ""))
	require.Equal(t, s, Dismiss(s, DismissBackground, ""))
	require.Equal(t, s, CloseModal(s, ModalAlert))
}

func TestEscapeClosesEveryActiveModal(t *testing.T) {
	s := NewState()
	s, _ = Touch(s, TypeFile)
	s = OpenModal(s, ModalAlert)
	s = OpenModal(s, ModalHelp)
	require.Equal(t, []ModalID{ModalPrompt, ModalHelp, ModalAlert}, ActiveModals(s))

	s = HandleKey(s, "esc")
	require.Empty(t, ActiveModals(s))
}

func TestHandleKey_OtherKeysIgnored(t *testing.T) {
	s := OpenModal(NewState(), ModalPrompt)
	require.Equal(t, s, HandleKey(s, "enter"))
}

func TestDismissControls_CloseOwningModal(t *testing.T) {
	controls := []DismissControl{DismissBackground, DismissCloseIcon, DismissHeaderDelete, DismissFooterButton}
	for _, c := range controls {
		t.Run(c.String(), func(t *testing.T) {
			s := OpenModal(OpenModal(NewState(), ModalPrompt), ModalAlert)
			s = Dismiss(s, c, ModalAlert)
			require.False(t, IsActive(s, ModalAlert))
			require.True(t, IsActive(s, ModalPrompt))

			s = Dismiss(s, c, ModalPrompt)
			require.Empty(t, ActiveModals(s))
		})
	}
}

func TestDismiss_UnknownControlIgnored(t *testing.T) {
	s := OpenModal(NewState(), ModalPrompt)
	require.Equal(t, s, Dismiss(s, DismissControl(42), ModalPrompt))
}
