package ast

type (
	// главные сущности
	FileID    uint32
	StmtID    uint32
	ExprID    uint32
	PatternID uint32
	// подсущности
	PayloadID uint32
)

const (
	NoFileID    FileID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoPatternID PatternID = 0
	NoPayloadID PayloadID = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PatternID) IsValid() bool { return id != NoPatternID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
