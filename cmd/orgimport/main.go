package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"personel-backend/internal/config"
	"personel-backend/internal/database"
	"personel-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// orgimport: XLSX dosyasından organizasyon yapısını (şube/blok/departman) yükler.
// Var olan kayıtlar isimle eşleştirilir, tekrar çalıştırmak güvenlidir.
//
// Beklenen sayfalar:
//
//	Subeler:       Ad | Adres | Telefon
//	Bloklar:       Sube | Ad
//	Departmanlar:  Sube | Blok | Ad | Ust Departman (opsiyonel)
func main() {
	filePath := flag.String("file", "", "Organizasyon XLSX dosyası")
	dryRun := flag.Bool("dry-run", false, "Sadece doğrula, veritabanına yazma")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := excelize.OpenFile(*filePath)
	if err != nil {
		log.Fatalf("[FATAL] Dosya açılamadı: %v", err)
	}
	defer f.Close()

	cfg := config.Load()
	database.Init(cfg)

	branches, err := importBranches(f, *dryRun)
	if err != nil {
		log.Fatalf("[FATAL] Şubeler yüklenemedi: %v", err)
	}
	blocks, err := importBlocks(f, branches, *dryRun)
	if err != nil {
		log.Fatalf("[FATAL] Bloklar yüklenemedi: %v", err)
	}
	if err := importDepartments(f, blocks, *dryRun); err != nil {
		log.Fatalf("[FATAL] Departmanlar yüklenemedi: %v", err)
	}

	if *dryRun {
		log.Println("Doğrulama tamamlandı, veritabanına yazılmadı (dry-run)")
		return
	}
	log.Println("Organizasyon yapısı yüklendi")
}

// dataRows: Sayfanın satırlarını başlık satırı atlanmış halde döndürür.
func dataRows(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s sayfası okunamadı: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func importBranches(f *excelize.File, dryRun bool) (map[string]uint, error) {
	rows, err := dataRows(f, "Subeler")
	if err != nil {
		return nil, err
	}

	branches := make(map[string]uint)
	for i, row := range rows {
		name := cell(row, 0)
		if name == "" {
			continue
		}

		var branch models.Branch
		err := database.DB.Where("name = ?", name).First(&branch).Error
		if err == nil {
			branches[name] = branch.ID
			continue
		}

		branch = models.Branch{
			Name:    name,
			Address: cell(row, 1),
			Phone:   cell(row, 2),
		}
		if dryRun {
			log.Printf("[DRY] Şube: %s", name)
			continue
		}
		if err := database.DB.Create(&branch).Error; err != nil {
			return nil, fmt.Errorf("satır %d (%s): %w", i+2, name, err)
		}
		branches[name] = branch.ID
		log.Printf("Şube oluşturuldu: %s", name)
	}

	return branches, nil
}

func importBlocks(f *excelize.File, branches map[string]uint, dryRun bool) (map[string]uint, error) {
	rows, err := dataRows(f, "Bloklar")
	if err != nil {
		return nil, err
	}

	// Blok anahtarı "şube/blok" çünkü blok adları sadece şube içinde tekil
	blocks := make(map[string]uint)
	for i, row := range rows {
		branchName := cell(row, 0)
		name := cell(row, 1)
		if name == "" {
			continue
		}

		branchID, ok := branches[branchName]
		if !ok && !dryRun {
			return nil, fmt.Errorf("satır %d: şube bulunamadı: %s", i+2, branchName)
		}

		key := branchName + "/" + name
		var block models.Block
		err := database.DB.Where("branch_id = ? AND name = ?", branchID, name).First(&block).Error
		if err == nil {
			blocks[key] = block.ID
			continue
		}

		if dryRun {
			log.Printf("[DRY] Blok: %s", key)
			continue
		}
		block = models.Block{BranchID: branchID, Name: name}
		if err := database.DB.Create(&block).Error; err != nil {
			return nil, fmt.Errorf("satır %d (%s): %w", i+2, key, err)
		}
		blocks[key] = block.ID
		log.Printf("Blok oluşturuldu: %s", key)
	}

	return blocks, nil
}

func importDepartments(f *excelize.File, blocks map[string]uint, dryRun bool) error {
	rows, err := dataRows(f, "Departmanlar")
	if err != nil {
		return err
	}

	for i, row := range rows {
		branchName := cell(row, 0)
		blockName := cell(row, 1)
		name := cell(row, 2)
		parentName := cell(row, 3)
		if name == "" {
			continue
		}

		key := branchName + "/" + blockName
		blockID, ok := blocks[key]
		if !ok && !dryRun {
			return fmt.Errorf("satır %d: blok bulunamadı: %s", i+2, key)
		}

		var existing models.Department
		if err := database.DB.Where("block_id = ? AND name = ?", blockID, name).First(&existing).Error; err == nil {
			continue
		}

		var parentID *uint
		if parentName != "" {
			var parent models.Department
			if err := database.DB.Where("block_id = ? AND name = ?", blockID, parentName).First(&parent).Error; err != nil {
				if !dryRun {
					return fmt.Errorf("satır %d: üst departman bulunamadı: %s (önce tanımlanmalı)", i+2, parentName)
				}
			} else {
				parentID = &parent.ID
			}
		}

		if dryRun {
			log.Printf("[DRY] Departman: %s/%s", key, name)
			continue
		}
		dept := models.Department{BlockID: blockID, ParentID: parentID, Name: name}
		if err := database.DB.Create(&dept).Error; err != nil {
			return fmt.Errorf("satır %d (%s/%s): %w", i+2, key, name, err)
		}
		log.Printf("Departman oluşturuldu: %s/%s", key, name)
	}

	return nil
}
