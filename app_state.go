package main

import "log"

// AppState is the top level screen.
type AppState int

const (
	StateMainMenu AppState = iota
	StateGame
)

func (s AppState) String() string {
	switch s {
	case StateMainMenu:
		return "MainMenu"
	case StateGame:
		return "Game"
	}
	return "Unknown"
}

// AppStateMachine holds the current AppState and reports entries.
type AppStateMachine struct {
	state   AppState
	OnEnter func(AppState)
}

func NewAppStateMachine(onEnter func(AppState)) *AppStateMachine {
	return &AppStateMachine{state: StateMainMenu, OnEnter: onEnter}
}

func (m *AppStateMachine) State() AppState {
	return m.state
}

// Set switches to next. It reports false when already there.
func (m *AppStateMachine) Set(next AppState) bool {
	if m.state == next {
		return false
	}
	m.state = next
	log.Printf("Entered AppState::%s", next)
	if m.OnEnter != nil {
		m.OnEnter(next)
	}
	return true
}

// HandleKeys applies the state-switch keys: M for the menu, G for the game.
func (m *AppStateMachine) HandleKeys(menuPressed, gamePressed bool) {
	if menuPressed && m.state != StateMainMenu {
		m.Set(StateMainMenu)
	}
	if gamePressed && m.state != StateGame {
		m.Set(StateGame)
	}
}
