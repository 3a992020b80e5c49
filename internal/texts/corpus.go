package texts

// FallbackText is served when the corpus lookup fails or the table is empty,
// so a race can always start.
const FallbackText = "The quick brown fox jumps over the lazy dog."

// Corpus is the seed set of race paragraphs, inserted by cmd/seeder when the
// texts table is empty.
var Corpus = []string{
	"The quick brown fox jumps over the lazy dog. Pack my box with five dozen liquor jugs. How vexingly quick daft zebras jump.",
	"Programming is the art of telling another human what one wants the computer to do. Code is read more often than it is written. Any fool can write code that a computer can understand.",
	"In the middle of difficulty lies opportunity. The only way to do great work is to love what you do. Success is not final, failure is not fatal.",
	"Practice makes perfect, but nobody's perfect, so why practice? The master has failed more times than the beginner has even tried. Success is the sum of small efforts repeated day in and day out.",
	"Life is what happens when you're busy making other plans. The only impossible journey is the one you never begin. Everything you can imagine is real.",
	"It is not the strongest of the species that survives, nor the most intelligent. It is the one that is most adaptable to change. Change is the only constant in life.",
	"The best time to plant a tree was twenty years ago. The second best time is now. Don't watch the clock; do what it does and keep going.",
	"Whether you think you can or you think you can't, you're right. Believe you can and you're halfway there. The future belongs to those who believe in the beauty of their dreams.",
	"Do not go where the path may lead, go instead where there is no path and leave a trail. The only limit to our realization of tomorrow is our doubts of today. Act as if what you do makes a difference because it does.",
	"Courage is not the absence of fear, but rather the assessment that something else is more important than fear. The brave may not live forever, but the cautious do not live at all. Fortune favors the bold.",
	"Two roads diverged in a wood, and I took the one less traveled by. And that has made all the difference. Not all those who wander are lost.",
	"To be yourself in a world that is constantly trying to make you something else is the greatest accomplishment. Be who you are and say what you feel, because those who mind don't matter and those who matter don't mind. Authenticity is the daily practice of letting go of who we think we're supposed to be.",
	"The only true wisdom is in knowing you know nothing. An unexamined life is not worth living. Education is the kindling of a flame, not the filling of a vessel.",
	"It does not matter how slowly you go as long as you do not stop. Our greatest glory is not in never falling, but in rising every time we fall. The journey of a thousand miles begins with a single step.",
	"In three words I can sum up everything I've learned about life: it goes on. The purpose of our lives is to be happy. Life is really simple, but we insist on making it complicated.",
}
