package packets

type IntSeq struct {
	items []int32
}

type Seq[T any] struct {
	items []T
}

type Vec2 struct {
	X, Y float32
}

type PingPacket struct{}

type MovePacket struct {
	_ struct{} `packet:"id=3"`

	X int32
	Y int32
}

type ChatPacket struct {
	Message  string
	SenderID int64
	Extra    any
	hidden   bool
	Debug    bool `packet:"-"`
	DATA     int32
}

type BatchPacket struct {
	Ids      IntSeq
	Flags    []bool
	Grid     [4][4]int8
	Tiles    Seq[int16]
	Position Vec2
	Count    uint16
}
