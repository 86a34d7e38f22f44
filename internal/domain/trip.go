package domain

import "time"

// Modal identifies a mode of transport.
type Modal string

const (
	ModalMetro   Modal = "metro"
	ModalTrain   Modal = "train"
	ModalBus     Modal = "bus"
	ModalBike    Modal = "bike"
	ModalScooter Modal = "scooter"
)

// Trip records a single journey. PointsEarned is fixed at write time and
// never recomputed, even if the award table changes later.
type Trip struct {
	ID           int64
	UserID       int64
	Modal        Modal
	Origin       *string
	Destination  *string
	PointsEarned int
	TakenAt      time.Time
}
