package physics

// Intent - снимок намерений игрока на один тик
type Intent struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
}
