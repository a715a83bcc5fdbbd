// Package scene defines the Scene interface for game screens.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the graphical frontend.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by one host frame of dt seconds.
	// Returns the next scene on a transition, nil to stay.
	// Returns an error to terminate the game (ebiten.Termination for a clean quit).
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is left or the game closes.
	// Timers, recordings and audio are released here.
	OnExit()
}
