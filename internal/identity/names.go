package identity

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Swift", "Turbo", "Rapid", "Lightning", "Blazing", "Quick", "Speedy",
	"Nimble", "Fleet", "Brisk", "Hasty", "Flying", "Dashing", "Racing",
	"Zooming", "Rushing", "Soaring", "Gliding", "Rocket", "Hyper",
}

var animals = []string{
	"Falcon", "Cheetah", "Rabbit", "Dolphin", "Hawk", "Cobra", "Wolf",
	"Panther", "Eagle", "Fox", "Tiger", "Lynx", "Jaguar", "Puma",
	"Gazelle", "Hare", "Otter", "Raven", "Viper", "Mongoose",
}

// randomName builds a display name like "SwiftFalcon42". Cosmetic only;
// collisions are acceptable.
func randomName() string {
	return fmt.Sprintf("%s%s%d",
		adjectives[rand.Intn(len(adjectives))],
		animals[rand.Intn(len(animals))],
		rand.Intn(1000),
	)
}
