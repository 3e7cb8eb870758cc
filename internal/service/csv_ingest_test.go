package service

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `学年,学期,课程代码,课程名称,教师,上课时间,上课时数/学分
114,1,CS101,资料结构,/王小明,三9/三10/三11,3/3
114,1,CS102,演算法,李大华,"二2,五4",3/3
`

func TestIngestCourseCSV_BasicNormalize(t *testing.T) {
	raw := []byte("学年,学期,课程名称,上课时间\n114,1,资料结构,三9/三10/三11\n")

	rows, rowErrors, err := IngestCourseCSV(raw, DefaultHeaderAliases())
	if err != nil {
		t.Fatalf("清洗失败: %v", err)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("期望无行级错误，实际=%v", rowErrors)
	}
	if len(rows) != 1 {
		t.Fatalf("期望1行，实际=%d", len(rows))
	}

	row := rows[0]
	if row.Year != 114 || row.Term != 1 {
		t.Errorf("期望114-1，实际=%d-%d", row.Year, row.Term)
	}
	if row.Name != "资料结构" {
		t.Errorf("期望Name=资料结构，实际=%s", row.Name)
	}
	if row.ScheduleRaw != "三9/三10/三11" {
		t.Errorf("期望课表原文保留，实际=%s", row.ScheduleRaw)
	}
}

func TestIngestCourseCSV_BOMAndBlankLines(t *testing.T) {
	plain := []byte("学年,学期,课程名称,上课时间\n114,1,资料结构,三9\n")
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, plain...)
	withBlank := []byte("学年,学期,课程名称,上课时间\n,,,\n114,1,资料结构,三9\n\n")

	for name, raw := range map[string][]byte{"带BOM": withBOM, "含空行": withBlank} {
		rows, rowErrors, err := IngestCourseCSV(raw, DefaultHeaderAliases())
		if err != nil {
			t.Fatalf("%s: 清洗失败: %v", name, err)
		}
		if len(rowErrors) != 0 {
			t.Errorf("%s: 期望无行级错误，实际=%v", name, rowErrors)
		}
		if len(rows) != 1 || rows[0].Name != "资料结构" {
			t.Errorf("%s: 期望清洗出同样的1行，实际=%v", name, rows)
		}
	}
}

func TestIngestCourseCSV_HeaderAliases(t *testing.T) {
	// 英文与繁体表头同样应被识别
	raw := []byte("Year,Semester,課程名稱,上課時間\n113,2,微积分,一3/一4\n")

	rows, _, err := IngestCourseCSV(raw, DefaultHeaderAliases())
	if err != nil {
		t.Fatalf("清洗失败: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("期望1行，实际=%d", len(rows))
	}
	if rows[0].Year != 113 || rows[0].Term != 2 || rows[0].Name != "微积分" {
		t.Errorf("别名映射结果错误: %+v", rows[0])
	}
}

func TestIngestCourseCSV_LeadingSlashStripped(t *testing.T) {
	raw := []byte(sampleCSV)

	rows, _, err := IngestCourseCSV(raw, DefaultHeaderAliases())
	if err != nil {
		t.Fatalf("清洗失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望2行，实际=%d", len(rows))
	}
	if rows[0].Instructor != "王小明" {
		t.Errorf("期望教师前缀斜杠被剥离，实际=%s", rows[0].Instructor)
	}
	if rows[0].Hours == nil || *rows[0].Hours != 3 || rows[0].Credits == nil || *rows[0].Credits != 3 {
		t.Errorf("期望学时/学分=3/3，实际=%v/%v", rows[0].Hours, rows[0].Credits)
	}
}

func TestIngestCourseCSV_RowErrorsDoNotAbort(t *testing.T) {
	raw := []byte("学年,学期,课程名称,上课时间,上课时数/学分\n" +
		"abc,1,课程甲,三9,\n" + // 学年非数字
		"114,3,课程乙,三9,\n" + // 学期越界
		"114,1,,三9,\n" + // 名称缺失
		"114,1,课程丙,三9,x/y\n" + // 学分格式错误
		"114,1,课程丁,三9,3/3\n") // 合法行

	rows, rowErrors, err := IngestCourseCSV(raw, DefaultHeaderAliases())
	if err != nil {
		t.Fatalf("期望批次继续，实际整体失败: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "课程丁" {
		t.Errorf("期望仅课程丁清洗成功，实际=%v", rows)
	}
	if len(rowErrors) != 4 {
		t.Fatalf("期望4条行级错误，实际=%d: %v", len(rowErrors), rowErrors)
	}
	// 行号为数据行序号（1 起）
	wantRows := []int{1, 2, 3, 4}
	for i, re := range rowErrors {
		if re.Row != wantRows[i] {
			t.Errorf("第%d条错误期望行号=%d，实际=%d", i, wantRows[i], re.Row)
		}
	}
}

func TestIngestCourseCSV_EmptyFile(t *testing.T) {
	for name, raw := range map[string][]byte{
		"零字节":    {},
		"仅BOM":   {0xEF, 0xBB, 0xBF},
		"仅空白": []byte("  \n\n"),
	} {
		_, _, err := IngestCourseCSV(raw, DefaultHeaderAliases())
		if !errors.Is(err, ErrEmptyCSV) {
			t.Errorf("%s: 期望 ErrEmptyCSV，实际: %v", name, err)
		}
	}
}

func TestIngestCourseCSV_MissingRequiredHeader(t *testing.T) {
	raw := []byte("学年,课程名称,上课时间\n114,资料结构,三9\n")

	_, _, err := IngestCourseCSV(raw, DefaultHeaderAliases())
	if !errors.Is(err, ErrEmptyCSV) {
		t.Fatalf("期望 ErrEmptyCSV（缺少学期列），实际: %v", err)
	}
	if !strings.Contains(err.Error(), "term") {
		t.Errorf("期望错误包含缺失字段名，实际: %v", err)
	}
}
