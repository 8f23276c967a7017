package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops labels.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold at which lists take less room.
	LayoutExtraWideWidth = 160
)

// Chrome is the number of lines taken by the header, command bar and footer.
const chromeHeight = 3

// Timing constants.
const (
	// CarouselInterval is how long a hero slide or testimonial stays up.
	CarouselInterval = 6 * time.Second

	// DefaultUIInterval is the tick used for toast expiry and the carousels.
	DefaultUIInterval = time.Second

	// LoadTimeout bounds a single view refresh.
	LoadTimeout = 30 * time.Second
)
