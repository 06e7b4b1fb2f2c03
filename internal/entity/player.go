package entity

type Player struct {
	Name string
	Mark Marking
}

func (that *Player) String() string {
	return that.Name + " (" + that.Mark.String() + ")"
}
